package transaction

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
	accountrepo "github.com/granafacil/financeiro/pkg/repository/account"
	billrepo "github.com/granafacil/financeiro/pkg/repository/bill"
	categoryrepo "github.com/granafacil/financeiro/pkg/repository/category"
	goalrepo "github.com/granafacil/financeiro/pkg/repository/goal"
	transactionrepo "github.com/granafacil/financeiro/pkg/repository/transaction"
	userrepo "github.com/granafacil/financeiro/pkg/repository/user"
	"github.com/granafacil/financeiro/pkg/service/balance"
)

type memAccounts struct {
	accounts map[uuid.UUID]*account.Account
	failNext error
}

func (m *memAccounts) Create(ctx context.Context, a *account.Account) error {
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memAccounts) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return nil, nil
}

func (m *memAccounts) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	a, ok := m.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	if update.Balance != nil {
		a.Balance = *update.Balance
	}
	if update.InitialBalance != nil {
		a.InitialBalance = *update.InitialBalance
	}
	return nil
}

func (m *memAccounts) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.accounts, id)
	return nil
}

func (m *memAccounts) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	a, ok := m.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

func (m *memAccounts) NetEffect(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *memAccounts) RecomputeBalance(ctx context.Context, id uuid.UUID) error { return nil }
func (m *memAccounts) RecomputeAllBalances(ctx context.Context) error           { return nil }

type memTransactions struct {
	transactions map[uuid.UUID]*transaction.Transaction
}

func (m *memTransactions) Create(ctx context.Context, t *transaction.Transaction) error {
	cp := *t
	m.transactions[t.ID] = &cp
	return nil
}

func (m *memTransactions) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTransactions) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range m.transactions {
		if t.UserID == userID && !t.Date.Before(from) && !t.Date.After(to) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTransactions) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (m *memTransactions) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	t, ok := m.transactions[id]
	if !ok {
		return transaction.ErrTransactionNotFound
	}
	if update.AccountID != nil {
		t.AccountID = *update.AccountID
	}
	t.CategoryID = update.CategoryID
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Amount != nil {
		t.Amount = *update.Amount
	}
	if update.Kind != nil {
		t.Kind = transaction.Kind(*update.Kind)
	}
	if update.Date != nil {
		t.Date = *update.Date
	}
	if update.ReceiptURL != nil {
		t.ReceiptURL = update.ReceiptURL
	}
	return nil
}

func (m *memTransactions) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.transactions[id]; !ok {
		return transaction.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *memTransactions) TotalsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (dto.MonthTotals, error) {
	return dto.MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}, nil
}

// memUoW snapshots both stores before Do and restores them when the unit of
// work fails, mirroring a database rollback.
type memUoW struct {
	accounts     *memAccounts
	transactions *memTransactions
}

func (u *memUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	accountSnap := map[uuid.UUID]*account.Account{}
	for id, a := range u.accounts.accounts {
		cp := *a
		accountSnap[id] = &cp
	}
	txSnap := map[uuid.UUID]*transaction.Transaction{}
	for id, t := range u.transactions.transactions {
		cp := *t
		txSnap[id] = &cp
	}
	if err := fn(u); err != nil {
		u.accounts.accounts = accountSnap
		u.transactions.transactions = txSnap
		return err
	}
	return nil
}

func (u *memUoW) AccountRepository() (accountrepo.Repository, error) {
	return u.accounts, nil
}

func (u *memUoW) TransactionRepository() (transactionrepo.Repository, error) {
	return u.transactions, nil
}

func (u *memUoW) CategoryRepository() (categoryrepo.Repository, error) { return nil, nil }
func (u *memUoW) GoalRepository() (goalrepo.Repository, error)         { return nil, nil }
func (u *memUoW) BillRepository() (billrepo.Repository, error)         { return nil, nil }
func (u *memUoW) UserRepository() (userrepo.Repository, error)         { return nil, nil }

type TransactionServiceTestSuite struct {
	suite.Suite
	uow     *memUoW
	svc     *Service
	userID  uuid.UUID
	acctID  uuid.UUID
	otherID uuid.UUID
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.uow = &memUoW{
		accounts:     &memAccounts{accounts: map[uuid.UUID]*account.Account{}},
		transactions: &memTransactions{transactions: map[uuid.UUID]*transaction.Transaction{}},
	}
	s.svc = New(s.uow, balance.NewReconciler(slog.Default()), slog.Default())
	s.userID = uuid.New()

	a, err := account.New().
		WithUserID(s.userID).
		WithName("Nubank").
		WithBalance(decimal.RequireFromString("500.00")).
		Build()
	s.Require().NoError(err)
	s.acctID = a.ID
	s.Require().NoError(s.uow.accounts.Create(context.Background(), a))

	b, err := account.New().
		WithUserID(s.userID).
		WithName("Caixa").
		WithType(account.TypeSavings).
		WithBalance(decimal.RequireFromString("100.00")).
		Build()
	s.Require().NoError(err)
	s.otherID = b.ID
	s.Require().NoError(s.uow.accounts.Create(context.Background(), b))
}

func (s *TransactionServiceTestSuite) balanceOf(id uuid.UUID) decimal.Decimal {
	return s.uow.accounts.accounts[id].Balance
}

func (s *TransactionServiceTestSuite) create(amount string, kind transaction.Kind) *transaction.Transaction {
	t, err := s.svc.Create(context.Background(), CreateInput{
		UserID:      s.userID,
		AccountID:   s.acctID,
		Description: "mercado",
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Date:        time.Now(),
	})
	s.Require().NoError(err)
	return t
}

func (s *TransactionServiceTestSuite) TestCreateAppliesEffect() {
	t := s.create("200.00", transaction.KindIncome)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("700.00")))
	s.Contains(s.uow.transactions.transactions, t.ID)
}

func (s *TransactionServiceTestSuite) TestCreateUnknownAccount() {
	_, err := s.svc.Create(context.Background(), CreateInput{
		UserID:      s.userID,
		AccountID:   uuid.New(),
		Description: "mercado",
		Amount:      decimal.RequireFromString("10.00"),
		Kind:        transaction.KindExpense,
		Date:        time.Now(),
	})
	s.ErrorIs(err, account.ErrAccountNotFound)
	s.Empty(s.uow.transactions.transactions)
}

func (s *TransactionServiceTestSuite) TestCreateOnForeignAccount() {
	_, err := s.svc.Create(context.Background(), CreateInput{
		UserID:      uuid.New(),
		AccountID:   s.acctID,
		Description: "mercado",
		Amount:      decimal.RequireFromString("10.00"),
		Kind:        transaction.KindExpense,
		Date:        time.Now(),
	})
	s.ErrorIs(err, account.ErrNotOwner)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("500.00")))
}

func (s *TransactionServiceTestSuite) TestCreateRejectsNonPositiveAmount() {
	for _, amount := range []string{"0", "-5"} {
		_, err := s.svc.Create(context.Background(), CreateInput{
			UserID:      s.userID,
			AccountID:   s.acctID,
			Description: "mercado",
			Amount:      decimal.RequireFromString(amount),
			Kind:        transaction.KindIncome,
			Date:        time.Now(),
		})
		s.ErrorIs(err, transaction.ErrAmountMustBePositive)
	}
	s.Empty(s.uow.transactions.transactions)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("500.00")))
}

func (s *TransactionServiceTestSuite) TestUpdateSameAccount() {
	t := s.create("200.00", transaction.KindIncome)
	s.create("50.00", transaction.KindExpense)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("650.00")))

	_, err := s.svc.Update(context.Background(), s.userID, t.ID, UpdateInput{
		AccountID:   s.acctID,
		Description: t.Description,
		Amount:      decimal.RequireFromString("150.00"),
		Kind:        transaction.KindIncome,
		Date:        t.Date,
	})
	s.Require().NoError(err)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("600.00")), "got %s", s.balanceOf(s.acctID))
}

func (s *TransactionServiceTestSuite) TestUpdateMovesBetweenAccounts() {
	t := s.create("100.00", transaction.KindIncome)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("600.00")))

	_, err := s.svc.Update(context.Background(), s.userID, t.ID, UpdateInput{
		AccountID:   s.otherID,
		Description: t.Description,
		Amount:      decimal.RequireFromString("100.00"),
		Kind:        transaction.KindIncome,
		Date:        t.Date,
	})
	s.Require().NoError(err)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("500.00")), "got %s", s.balanceOf(s.acctID))
	s.True(s.balanceOf(s.otherID).Equal(decimal.RequireFromString("200.00")), "got %s", s.balanceOf(s.otherID))
}

func (s *TransactionServiceTestSuite) TestDeleteReversesEffect() {
	s.create("200.00", transaction.KindIncome)
	t := s.create("50.00", transaction.KindExpense)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("650.00")))

	s.Require().NoError(s.svc.Delete(context.Background(), s.userID, t.ID))
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("700.00")), "got %s", s.balanceOf(s.acctID))
	s.NotContains(s.uow.transactions.transactions, t.ID)
}

func (s *TransactionServiceTestSuite) TestDeleteForeignTransaction() {
	t := s.create("10.00", transaction.KindExpense)
	err := s.svc.Delete(context.Background(), uuid.New(), t.ID)
	s.ErrorIs(err, transaction.ErrNotOwner)
	s.Contains(s.uow.transactions.transactions, t.ID)
}

func (s *TransactionServiceTestSuite) TestFailedReconciliationRollsBackRecord() {
	s.uow.accounts.failNext = errors.New("connection reset")
	_, err := s.svc.Create(context.Background(), CreateInput{
		UserID:      s.userID,
		AccountID:   s.acctID,
		Description: "mercado",
		Amount:      decimal.RequireFromString("25.00"),
		Kind:        transaction.KindExpense,
		Date:        time.Now(),
	})
	s.Error(err)
	// The unit of work rolled back: no record, no balance change.
	s.Empty(s.uow.transactions.transactions)
	s.True(s.balanceOf(s.acctID).Equal(decimal.RequireFromString("500.00")))
}

func (s *TransactionServiceTestSuite) TestListMonth() {
	s.create("200.00", transaction.KindIncome)
	s.create("50.00", transaction.KindExpense)

	list, err := s.svc.ListMonth(context.Background(), s.userID, time.Now())
	s.Require().NoError(err)
	s.Len(list, 2)

	list, err = s.svc.ListMonth(context.Background(), s.userID, time.Now().AddDate(0, -2, 0))
	s.Require().NoError(err)
	s.Empty(list)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
