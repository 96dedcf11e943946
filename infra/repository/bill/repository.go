// Package bill implements the bill repository on GORM/Postgres.
package bill

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/bill"
)

type repository struct {
	db *gorm.DB
}

// New creates a new bill repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return bill.ErrBillNotFound
	}
	return err
}

// Create implements bill.Repository.
func (r *repository) Create(ctx context.Context, b *bill.Bill) error {
	record := model.Bill{
		ID:           b.ID,
		UserID:       b.UserID,
		Kind:         string(b.Kind),
		Counterparty: b.Counterparty,
		Description:  b.Description,
		TotalAmount:  b.TotalAmount,
		DueDate:      b.DueDate,
		Status:       string(b.Status),
		CategoryID:   b.CategoryID,
		CreatedAt:    b.CreatedAt,
	}
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements bill.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	var record model.Bill
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record), nil
}

// ListByUser implements bill.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*bill.Bill, error) {
	var records []model.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelsToEntities(records), nil
}

// Update implements bill.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.BillUpdate) error {
	updates := make(map[string]any)
	if update.Kind != nil {
		updates["kind"] = *update.Kind
	}
	if update.Counterparty != nil {
		updates["counterparty"] = *update.Counterparty
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.TotalAmount != nil {
		updates["total_amount"] = *update.TotalAmount
	}
	if update.DueDate != nil {
		updates["due_date"] = *update.DueDate
	}
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Bill{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}

// Delete implements bill.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Bill{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return bill.ErrBillNotFound
	}
	return nil
}

// CountPending implements bill.Repository.
func (r *repository) CountPending(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bill{}).
		Where("user_id = ? AND status = ?", userID, string(bill.StatusPending)).
		Count(&count).Error
	if err != nil {
		return 0, mapErr(err)
	}
	return count, nil
}

// ListPendingDueBetween implements bill.Repository.
func (r *repository) ListPendingDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*bill.Bill, error) {
	var records []model.Bill
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND due_date BETWEEN ? AND ?",
			userID, string(bill.StatusPending), from, to).
		Order("due_date").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelsToEntities(records), nil
}

func mapModelToEntity(record *model.Bill) *bill.Bill {
	return &bill.Bill{
		ID:           record.ID,
		UserID:       record.UserID,
		Kind:         bill.Kind(record.Kind),
		Counterparty: record.Counterparty,
		Description:  record.Description,
		TotalAmount:  record.TotalAmount,
		DueDate:      record.DueDate,
		Status:       bill.Status(record.Status),
		CategoryID:   record.CategoryID,
		CreatedAt:    record.CreatedAt,
	}
}

func mapModelsToEntities(records []model.Bill) []*bill.Bill {
	result := make([]*bill.Bill, 0, len(records))
	for i := range records {
		result = append(result, mapModelToEntity(&records[i]))
	}
	return result
}
