// Package category provides business logic for transaction categories.
package category

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
)

// Service provides business logic for category operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new category Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries the fields of a new category.
type CreateInput struct {
	UserID      uuid.UUID
	Name        string
	Description *string
	Color       string
	Kind        category.Kind
}

// UpdateInput carries the editable fields of an existing category. Nil
// fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Color       *string
	Kind        *string
}

// Create registers a new category.
func (s *Service) Create(ctx context.Context, input CreateInput) (c *category.Category, err error) {
	logger := s.logger.With("user_id", input.UserID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err = category.New(input.UserID, input.Name, input.Description, input.Color, input.Kind)
		if err != nil {
			return err
		}
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		return categories.Create(ctx, c)
	})
	if err != nil {
		c = nil
		logger.Error("create category failed", "error", err)
		return
	}
	logger.Info("category created", "category_id", c.ID, "kind", c.Kind)
	return
}

// Get retrieves a single category owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (c *category.Category, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		c, err = categories.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return category.ErrCategoryNotFound
		}
		return nil
	})
	if err != nil {
		c = nil
	}
	return
}

// List lists the user's categories.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*category.Category, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		list, err = categories.ListByUser(ctx, userID)
		return err
	})
	return
}

// Update edits a category.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (c *category.Category, err error) {
	logger := s.logger.With("user_id", userID, "category_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		c, err = categories.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return category.ErrCategoryNotFound
		}
		if input.Name != nil && *input.Name == "" {
			return category.ErrNameRequired
		}
		if input.Kind != nil && !category.Kind(*input.Kind).Valid() {
			return category.ErrInvalidKind
		}
		if err = categories.Update(ctx, id, dto.CategoryUpdate{
			Name:        input.Name,
			Description: input.Description,
			Color:       input.Color,
			Kind:        input.Kind,
		}); err != nil {
			return err
		}
		c, err = categories.Get(ctx, id)
		return err
	})
	if err != nil {
		c = nil
		logger.Error("update category failed", "error", err)
		return
	}
	logger.Info("category updated")
	return
}

// Delete removes a category. Transactions that referenced it become
// uncategorized, their amounts and balances are untouched.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("user_id", userID, "category_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		categories, err := uow.CategoryRepository()
		if err != nil {
			return err
		}
		c, err := categories.Get(ctx, id)
		if err != nil {
			return err
		}
		if c.UserID != userID {
			return category.ErrCategoryNotFound
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("delete category failed", "error", err)
		return err
	}
	logger.Info("category deleted")
	return nil
}
