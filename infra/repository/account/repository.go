// Package account implements the account repository on GORM/Postgres.
package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	infrarepo "github.com/granafacil/financeiro/infra/repository"
	"github.com/granafacil/financeiro/infra/repository/model"
	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/dto"
	repo "github.com/granafacil/financeiro/pkg/repository/account"
)

type repository struct {
	db *gorm.DB
}

// New creates a new account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func mapErr(err error) error {
	err = infrarepo.MapGormErrorToDomain(err)
	if errors.Is(err, domain.ErrNotFound) {
		return account.ErrAccountNotFound
	}
	return err
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, a *account.Account) error {
	record := mapEntityToModel(a)
	return mapErr(r.db.WithContext(ctx).Create(&record).Error)
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	var record model.Account
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return mapModelToEntity(&record)
}

// ListByUser implements account.Repository.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var records []model.Account
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&records).Error; err != nil {
		return nil, mapErr(err)
	}
	result := make([]*account.Account, 0, len(records))
	for i := range records {
		a, err := mapModelToEntity(&records[i])
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// Update implements account.Repository.
func (r *repository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := mapUpdateDTOToModel(update)
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// Delete implements account.Repository.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Account{}, "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// ApplyBalanceDelta implements account.Repository. The balance moves by
// delta in one conditional UPDATE on the server, never through a
// read-modify-write in Go.
func (r *repository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

const signedEffectSum = `
COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE -amount END), 0)`

// NetEffect implements account.Repository.
func (r *repository) NetEffect(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var net decimal.Decimal
	err := r.db.WithContext(ctx).
		Raw("SELECT "+signedEffectSum+" FROM transactions WHERE account_id = ?", id).
		Scan(&net).Error
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	return net, nil
}

const recomputeBalanceSQL = `
UPDATE accounts SET balance = initial_balance + (
    SELECT ` + signedEffectSum + `
    FROM transactions t WHERE t.account_id = accounts.id
), updated_at = CURRENT_TIMESTAMP`

// RecomputeBalance implements account.Repository. The whole reset is one
// server-side statement so it cannot race the delta path within a
// transaction boundary.
func (r *repository) RecomputeBalance(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Exec(recomputeBalanceSQL+" WHERE id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// RecomputeAllBalances implements account.Repository.
func (r *repository) RecomputeAllBalances(ctx context.Context) error {
	return mapErr(r.db.WithContext(ctx).Exec(recomputeBalanceSQL).Error)
}

// mapEntityToModel maps an Account entity to its GORM record.
func mapEntityToModel(a *account.Account) model.Account {
	return model.Account{
		ID:             a.ID,
		UserID:         a.UserID,
		Name:           a.Name,
		Type:           string(a.Type),
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		Institution:    a.Institution,
		Color:          a.Color,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// mapUpdateDTOToModel maps AccountUpdate DTO to a map for GORM Updates.
func mapUpdateDTOToModel(update dto.AccountUpdate) map[string]any {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if update.InitialBalance != nil {
		updates["initial_balance"] = *update.InitialBalance
	}
	if update.Institution != nil {
		updates["institution"] = *update.Institution
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	return updates
}

// mapModelToEntity maps a GORM record back to the Account entity.
func mapModelToEntity(record *model.Account) (*account.Account, error) {
	a, err := account.New().
		WithID(record.ID).
		WithUserID(record.UserID).
		WithName(record.Name).
		WithType(account.Type(record.Type)).
		WithInstitution(record.Institution).
		WithColor(record.Color).
		WithCreatedAt(record.CreatedAt).
		WithUpdatedAt(record.UpdatedAt).
		Build()
	if err != nil {
		return nil, err
	}
	// Balance and baseline are stored separately; Build treats the opening
	// balance as both.
	a.Balance = record.Balance
	a.InitialBalance = record.InitialBalance
	return a, nil
}
