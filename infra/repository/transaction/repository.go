// Package transaction implements the transaction repository on
// GORM/Postgres.
package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/transaction"

	"time"
)

type repository struct {
	db *gorm.DB
}

// New creates a new transaction repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return transaction.ErrTransactionNotFound
	}
	return err
}

// Create implements transaction.Repository.
func (r *repository) Create(ctx context.Context, t *transaction.Transaction) error {
	record := mapEntityToModel(t)
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements transaction.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	var record model.Transaction
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record)
}

// ListByUserBetween implements transaction.Repository.
func (r *repository) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error) {
	var records []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelsToEntities(records)
}

// ListByAccount implements transaction.Repository.
func (r *repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var records []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("date DESC, created_at DESC").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelsToEntities(records)
}

// Update implements transaction.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

// Delete implements transaction.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

// TotalsBetween implements transaction.Repository.
func (r *repository) TotalsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (dto.MonthTotals, error) {
	var row struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Raw(`SELECT
        COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0) AS income,
        COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0) AS expense
    FROM transactions WHERE user_id = ? AND date BETWEEN ? AND ?`, userID, from, to).
		Scan(&row).Error
	if err != nil {
		return dto.MonthTotals{}, mapErr(err)
	}
	return dto.MonthTotals{Income: row.Income, Expense: row.Expense}, nil
}

// mapEntityToModel maps a Transaction entity to its GORM record.
func mapEntityToModel(t *transaction.Transaction) model.Transaction {
	return model.Transaction{
		ID:          t.ID,
		UserID:      t.UserID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Description: t.Description,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Date:        t.Date,
		ReceiptURL:  t.ReceiptURL,
		CreatedAt:   t.CreatedAt,
	}
}

// mapUpdateDTOToModel maps TransactionUpdate DTO to a map for GORM Updates.
// CategoryID and ReceiptURL are always written: clearing them is a valid
// update.
func mapUpdateDTOToModel(update dto.TransactionUpdate) map[string]any {
	updates := map[string]any{
		"category_id": update.CategoryID,
		"receipt_url": update.ReceiptURL,
	}
	if update.AccountID != nil {
		updates["account_id"] = *update.AccountID
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Kind != nil {
		updates["kind"] = *update.Kind
	}
	if update.Date != nil {
		updates["date"] = *update.Date
	}
	return updates
}

// mapModelToEntity maps a GORM record back to the Transaction entity.
func mapModelToEntity(record *model.Transaction) (*transaction.Transaction, error) {
	return transaction.New().
		WithID(record.ID).
		WithUserID(record.UserID).
		WithAccountID(record.AccountID).
		WithCategoryID(record.CategoryID).
		WithDescription(record.Description).
		WithAmount(record.Amount).
		WithKind(transaction.Kind(record.Kind)).
		WithDate(record.Date).
		WithReceiptURL(record.ReceiptURL).
		WithCreatedAt(record.CreatedAt).
		Build()
}

func mapModelsToEntities(records []model.Transaction) ([]*transaction.Transaction, error) {
	result := make([]*transaction.Transaction, 0, len(records))
	for i := range records {
		t, err := mapModelToEntity(&records[i])
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
