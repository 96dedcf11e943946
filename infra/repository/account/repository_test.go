package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/dto"
)

func newMockRepo(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return &repository{db: db}, mock
}

func TestGet(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)
	accountID := uuid.New()
	userID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "type", "balance", "initial_balance",
		"institution", "color", "created_at", "updated_at",
	}).AddRow(accountID, userID, "Nubank", "checking", "650.00", "500.00",
		nil, "#2563eb", time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	a, err := repo.Get(context.Background(), accountID)
	assert.NoError(err)
	assert.NotNil(a)
	assert.Equal(accountID, a.ID)
	assert.True(a.Balance.Equal(decimal.RequireFromString("650.00")))
	assert.True(a.InitialBalance.Equal(decimal.RequireFromString("500.00")))

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)
	a, err = repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(err, account.ErrAccountNotFound)
	assert.Nil(a)
}

func TestApplyBalanceDelta(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE "accounts" SET "balance"=balance \+ \$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ApplyBalanceDelta(context.Background(), accountID, decimal.RequireFromString("-50.00"))
	assert.NoError(err)
}

func TestApplyBalanceDeltaMissingAccount(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "accounts" SET "balance"=balance \+ \$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ApplyBalanceDelta(context.Background(), uuid.New(), decimal.NewFromInt(10))
	assert.ErrorIs(err, account.ErrAccountNotFound)
}

func TestApplyBalanceDeltaDriverError(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE "accounts" SET "balance"=balance \+ \$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))

	err := repo.ApplyBalanceDelta(context.Background(), uuid.New(), decimal.NewFromInt(10))
	assert.Error(err)
	assert.NotErrorIs(err, account.ErrAccountNotFound)
}

func TestNetEffect(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)
	accountID := uuid.New()

	rows := sqlmock.NewRows([]string{"coalesce"}).AddRow("150.00")
	mock.ExpectQuery(`SELECT\s+COALESCE\(SUM\(CASE WHEN kind = 'income' THEN amount ELSE -amount END\), 0\) FROM transactions WHERE account_id = \$1`).
		WithArgs(accountID).WillReturnRows(rows)

	net, err := repo.NetEffect(context.Background(), accountID)
	assert.NoError(err)
	assert.True(net.Equal(decimal.RequireFromString("150.00")))
}

func TestRecomputeBalance(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)
	accountID := uuid.New()

	mock.ExpectExec(`UPDATE accounts SET balance = initial_balance \+ \(`).
		WithArgs(accountID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(repo.RecomputeBalance(context.Background(), accountID))

	mock.ExpectExec(`UPDATE accounts SET balance = initial_balance \+ \(`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecomputeBalance(context.Background(), uuid.New())
	assert.ErrorIs(err, account.ErrAccountNotFound)
}

func TestRecomputeAllBalances(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE accounts SET balance = initial_balance \+ \(`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(repo.RecomputeAllBalances(context.Background()))
}

func TestUpdateMissingAccount(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)

	name := "Carteira"
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), uuid.New(), dto.AccountUpdate{Name: &name})
	assert.ErrorIs(err, account.ErrAccountNotFound)
}

func TestCreate(t *testing.T) {
	assert := assert.New(t)
	repo, mock := newMockRepo(t)

	a, err := account.New().
		WithUserID(uuid.New()).
		WithName("Nubank").
		WithBalance(decimal.RequireFromString("500.00")).
		Build()
	assert.NoError(err)

	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(repo.Create(context.Background(), a))

	mock.ExpectExec(`INSERT INTO "accounts" (.+) VALUES (.+)`).
		WillReturnError(errors.New("create error"))

	assert.Error(repo.Create(context.Background(), a))
}
