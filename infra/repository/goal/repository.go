// Package goal implements the goal repository on GORM/Postgres.
package goal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/goal"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/goal"
)

type repository struct {
	db *gorm.DB
}

// New creates a new goal repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return goal.ErrGoalNotFound
	}
	return err
}

// Create implements goal.Repository.
func (r *repository) Create(ctx context.Context, g *goal.Goal) error {
	record := model.Goal{
		ID:            g.ID,
		UserID:        g.UserID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		Color:         g.Color,
		Completed:     g.Completed(),
		CreatedAt:     g.CreatedAt,
	}
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements goal.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	var record model.Goal
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record), nil
}

// ListByUser implements goal.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	var records []model.Goal
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed, created_at").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	result := make([]*goal.Goal, 0, len(records))
	for i := range records {
		result = append(result, mapModelToEntity(&records[i]))
	}
	return result, nil
}

// Update implements goal.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.GoalUpdate) error {
	updates := make(map[string]any)
	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.TargetAmount != nil {
		updates["target_amount"] = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		updates["current_amount"] = *update.CurrentAmount
	}
	if update.StartDate != nil {
		updates["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		updates["end_date"] = *update.EndDate
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.Completed != nil {
		updates["completed"] = *update.Completed
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Goal{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

// Delete implements goal.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Goal{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return nil
}

func mapModelToEntity(record *model.Goal) *goal.Goal {
	return &goal.Goal{
		ID:            record.ID,
		UserID:        record.UserID,
		Title:         record.Title,
		Description:   record.Description,
		TargetAmount:  record.TargetAmount,
		CurrentAmount: record.CurrentAmount,
		StartDate:     record.StartDate,
		EndDate:       record.EndDate,
		Color:         record.Color,
		CreatedAt:     record.CreatedAt,
	}
}
