// Package user provides business logic for user accounts and profiles.
package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
	"github.com/granafacil/financeiro/pkg/utils"
)

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new user Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// UpdateInput carries the editable profile fields. Nil fields are left
// untouched. Password is hashed before storage.
type UpdateInput struct {
	Name      *string
	Email     *string
	Password  *string
	AvatarURL *string
}

// Create registers a new user with a hashed password.
func (s *Service) Create(ctx context.Context, name, email, password string) (u *user.User, err error) {
	logger := s.logger.With("email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err = user.NewUser(name, email, password)
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return users.Create(ctx, u)
	})
	if err != nil {
		u = nil
		logger.Error("create user failed", "error", err)
		return
	}
	logger.Info("user created", "user_id", u.ID)
	return
}

// Get retrieves a user by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// GetByEmail retrieves a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// Update edits a user's profile. A new password is hashed, a new email is
// validated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (u *user.User, err error) {
	logger := s.logger.With("user_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err = users.Get(ctx, id); err != nil {
			return err
		}
		if input.Email != nil && !utils.IsEmail(*input.Email) {
			return errors.New("invalid email address")
		}
		update := dto.UserUpdate{
			Name:      input.Name,
			Email:     input.Email,
			AvatarURL: input.AvatarURL,
		}
		if input.Password != nil {
			hashed, err := utils.HashPassword(*input.Password)
			if err != nil {
				return err
			}
			update.Password = &hashed
		}
		if err = users.Update(ctx, id, update); err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		return err
	})
	if err != nil {
		u = nil
		logger.Error("update user failed", "error", err)
		return
	}
	logger.Info("user updated")
	return
}

// Delete removes a user and, through the schema's cascade, everything they
// own.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	logger := s.logger.With("user_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("delete user failed", "error", err)
		return err
	}
	logger.Info("user deleted")
	return nil
}

// Valid reports whether password matches the stored hash for the user.
func (s *Service) Valid(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return utils.CheckPasswordHash(password, u.Password), nil
}
