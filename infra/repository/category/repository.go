// Package category implements the category repository on GORM/Postgres.
package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/category"
)

type repository struct {
	db *gorm.DB
}

// New creates a new category repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return category.ErrCategoryNotFound
	}
	return err
}

// Create implements category.Repository.
func (r *repository) Create(ctx context.Context, c *category.Category) error {
	record := model.Category{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Kind:        string(c.Kind),
		CreatedAt:   c.CreatedAt,
	}
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements category.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	var record model.Category
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record), nil
}

// ListByUser implements category.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	var records []model.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	result := make([]*category.Category, 0, len(records))
	for i := range records {
		result = append(result, mapModelToEntity(&records[i]))
	}
	return result, nil
}

// Update implements category.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.Kind != nil {
		updates["kind"] = *update.Kind
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

// Delete implements category.Repository. Transactions and bills keep their
// rows, their category reference is set to NULL by the schema.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func mapModelToEntity(record *model.Category) *category.Category {
	return &category.Category{
		ID:          record.ID,
		UserID:      record.UserID,
		Name:        record.Name,
		Description: record.Description,
		Color:       record.Color,
		Kind:        category.Kind(record.Kind),
		CreatedAt:   record.CreatedAt,
	}
}
