package balance

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/dto"
)

// fakeAccountRepo is an in-memory account.Repository holding balances only.
type fakeAccountRepo struct {
	balances map[uuid.UUID]decimal.Decimal
	initial  map[uuid.UUID]decimal.Decimal
	net      map[uuid.UUID]decimal.Decimal
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		balances: map[uuid.UUID]decimal.Decimal{},
		initial:  map[uuid.UUID]decimal.Decimal{},
		net:      map[uuid.UUID]decimal.Decimal{},
	}
}

func (f *fakeAccountRepo) add(id uuid.UUID, balance decimal.Decimal) {
	f.balances[id] = balance
	f.initial[id] = balance
	f.net[id] = decimal.Zero
}

func (f *fakeAccountRepo) Create(ctx context.Context, a *account.Account) error {
	f.add(a.ID, a.Balance)
	return nil
}

func (f *fakeAccountRepo) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if _, ok := f.balances[id]; !ok {
		return nil, account.ErrAccountNotFound
	}
	return &account.Account{ID: id, Balance: f.balances[id], InitialBalance: f.initial[id]}, nil
}

func (f *fakeAccountRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return nil, nil
}

func (f *fakeAccountRepo) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	if _, ok := f.balances[id]; !ok {
		return account.ErrAccountNotFound
	}
	if update.Balance != nil {
		f.balances[id] = *update.Balance
	}
	if update.InitialBalance != nil {
		f.initial[id] = *update.InitialBalance
	}
	return nil
}

func (f *fakeAccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.balances, id)
	return nil
}

func (f *fakeAccountRepo) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	bal, ok := f.balances[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	f.balances[id] = bal.Add(delta)
	f.net[id] = f.net[id].Add(delta)
	return nil
}

func (f *fakeAccountRepo) NetEffect(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	return f.net[id], nil
}

func (f *fakeAccountRepo) RecomputeBalance(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.balances[id]; !ok {
		return account.ErrAccountNotFound
	}
	f.balances[id] = f.initial[id].Add(f.net[id])
	return nil
}

func (f *fakeAccountRepo) RecomputeAllBalances(ctx context.Context) error {
	for id := range f.balances {
		f.balances[id] = f.initial[id].Add(f.net[id])
	}
	return nil
}

type ReconcilerTestSuite struct {
	suite.Suite
	repo       *fakeAccountRepo
	reconciler *Reconciler
	accountID  uuid.UUID
}

func (s *ReconcilerTestSuite) SetupTest() {
	s.repo = newFakeAccountRepo()
	s.reconciler = NewReconciler(slog.Default())
	s.accountID = uuid.New()
	s.repo.add(s.accountID, decimal.RequireFromString("500.00"))
}

func (s *ReconcilerTestSuite) effect(amount string, kind transaction.Kind) *transaction.Effect {
	return &transaction.Effect{
		AccountID: s.accountID,
		Amount:    decimal.RequireFromString(amount),
		Kind:      kind,
	}
}

func (s *ReconcilerTestSuite) balance() decimal.Decimal {
	return s.repo.balances[s.accountID]
}

func (s *ReconcilerTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()

	// Create income 200.00: 500 -> 700.
	err := s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("200.00", transaction.KindIncome), nil)
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("700.00")), "got %s", s.balance())

	// Create expense 50.00: 700 -> 650.
	err = s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("50.00", transaction.KindExpense), nil)
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("650.00")), "got %s", s.balance())

	// Edit income 200.00 -> 150.00: 650 -> 600.
	err = s.reconciler.Apply(ctx, s.repo, s.accountID,
		s.effect("150.00", transaction.KindIncome),
		s.effect("200.00", transaction.KindIncome))
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("600.00")), "got %s", s.balance())

	// Delete expense 50.00: 600 -> 650.
	err = s.reconciler.Apply(ctx, s.repo, s.accountID, nil, s.effect("50.00", transaction.KindExpense))
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("650.00")), "got %s", s.balance())
}

func (s *ReconcilerTestSuite) TestReversalRestoresExactBalance() {
	ctx := context.Background()
	before := s.balance()

	eff := s.effect("33.07", transaction.KindExpense)
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, eff, nil))
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, nil, eff))

	s.True(s.balance().Equal(before), "expected %s, got %s", before, s.balance())
}

func (s *ReconcilerTestSuite) TestAmountValidation() {
	ctx := context.Background()

	err := s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("0", transaction.KindIncome), nil)
	s.ErrorIs(err, transaction.ErrAmountMustBePositive)

	err = s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("-5", transaction.KindIncome), nil)
	s.ErrorIs(err, transaction.ErrAmountMustBePositive)

	err = s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("0.01", transaction.KindIncome), nil)
	s.NoError(err)
	s.True(s.balance().Equal(decimal.RequireFromString("500.01")))
}

func (s *ReconcilerTestSuite) TestInvalidKind() {
	ctx := context.Background()
	eff := &transaction.Effect{
		AccountID: s.accountID,
		Amount:    decimal.RequireFromString("10.00"),
		Kind:      transaction.Kind("transfer"),
	}
	err := s.reconciler.Apply(ctx, s.repo, s.accountID, eff, nil)
	s.ErrorIs(err, transaction.ErrInvalidKind)
}

func (s *ReconcilerTestSuite) TestMoveBetweenAccountsPreservesTotal() {
	ctx := context.Background()
	otherID := uuid.New()
	s.repo.add(otherID, decimal.RequireFromString("100.00"))

	// Income 100.00 recorded on account A.
	eff := s.effect("100.00", transaction.KindIncome)
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, eff, nil))

	totalBefore := s.balance().Add(s.repo.balances[otherID])

	// Move it to account B: reverse on A, apply on B.
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, nil, eff))
	moved := &transaction.Effect{AccountID: otherID, Amount: eff.Amount, Kind: eff.Kind}
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, otherID, moved, nil))

	s.True(s.balance().Equal(decimal.RequireFromString("500.00")), "got %s", s.balance())
	s.True(s.repo.balances[otherID].Equal(decimal.RequireFromString("200.00")), "got %s", s.repo.balances[otherID])
	s.True(s.balance().Add(s.repo.balances[otherID]).Equal(totalBefore))
}

func (s *ReconcilerTestSuite) TestAccountNotFound() {
	ctx := context.Background()
	missing := uuid.New()
	eff := &transaction.Effect{
		AccountID: missing,
		Amount:    decimal.RequireFromString("10.00"),
		Kind:      transaction.KindIncome,
	}
	err := s.reconciler.Apply(ctx, s.repo, missing, eff, nil)
	s.ErrorIs(err, account.ErrAccountNotFound)
	// Existing account untouched.
	s.True(s.balance().Equal(decimal.RequireFromString("500.00")))
}

func (s *ReconcilerTestSuite) TestNothingToApply() {
	err := s.reconciler.Apply(context.Background(), s.repo, s.accountID, nil, nil)
	s.ErrorIs(err, ErrNothingToApply)
}

func (s *ReconcilerTestSuite) TestBalanceEqualsInitialPlusNetEffect() {
	ctx := context.Background()

	steps := []struct {
		apply    *transaction.Effect
		previous *transaction.Effect
	}{
		{s.effect("1200.00", transaction.KindIncome), nil},
		{s.effect("89.90", transaction.KindExpense), nil},
		{s.effect("45.50", transaction.KindExpense), nil},
		{s.effect("99.90", transaction.KindExpense), s.effect("89.90", transaction.KindExpense)},
		{nil, s.effect("45.50", transaction.KindExpense)},
	}
	for _, step := range steps {
		s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, step.apply, step.previous))
	}

	net, err := s.repo.NetEffect(ctx, s.accountID)
	s.Require().NoError(err)
	expected := s.repo.initial[s.accountID].Add(net)
	s.True(s.balance().Equal(expected), "expected %s, got %s", expected, s.balance())
}

func (s *ReconcilerTestSuite) TestRecomputeRestoresDriftedBalance() {
	ctx := context.Background()
	s.Require().NoError(s.reconciler.Apply(ctx, s.repo, s.accountID, s.effect("100.00", transaction.KindIncome), nil))

	// Simulate drift from a lost write.
	s.repo.balances[s.accountID] = decimal.RequireFromString("123.45")

	s.Require().NoError(s.reconciler.Recompute(ctx, s.repo, s.accountID))
	s.True(s.balance().Equal(decimal.RequireFromString("600.00")), "got %s", s.balance())

	err := s.reconciler.Recompute(ctx, s.repo, uuid.New())
	s.ErrorIs(err, account.ErrAccountNotFound)
}

func TestReconcilerTestSuite(t *testing.T) {
	suite.Run(t, new(ReconcilerTestSuite))
}
