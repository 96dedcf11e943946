// Package user implements the user repository on GORM/Postgres.
package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/user"
)

type repository struct {
	db *gorm.DB
}

// New creates a new user repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return user.ErrUserNotFound
	}
	return err
}

// Create implements user.Repository.
func (r *repository) Create(ctx context.Context, u *user.User) error {
	record := model.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements user.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var record model.User
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record), nil
}

// GetByEmail implements user.Repository.
func (r *repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var record model.User
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record), nil
}

// Update implements user.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	if update.AvatarURL != nil {
		updates["avatar_url"] = *update.AvatarURL
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func mapModelToEntity(record *model.User) *user.User {
	return user.NewUserFromData(
		record.ID,
		record.Name,
		record.Email,
		record.Password,
		record.AvatarURL,
		record.CreatedAt,
		record.UpdatedAt,
	)
}
