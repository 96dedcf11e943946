// Package testutils provides an in-memory backend and a preconfigured Fiber
// app for exercising the HTTP layer without a database.
package testutils

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	infrastorage "github.com/granafacil/financeiro/infra/storage"
	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/domain/goal"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
	accountrepo "github.com/granafacil/financeiro/pkg/repository/account"
	billrepo "github.com/granafacil/financeiro/pkg/repository/bill"
	categoryrepo "github.com/granafacil/financeiro/pkg/repository/category"
	goalrepo "github.com/granafacil/financeiro/pkg/repository/goal"
	transactionrepo "github.com/granafacil/financeiro/pkg/repository/transaction"
	userrepo "github.com/granafacil/financeiro/pkg/repository/user"
	accountsvc "github.com/granafacil/financeiro/pkg/service/account"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	"github.com/granafacil/financeiro/pkg/service/balance"
	billsvc "github.com/granafacil/financeiro/pkg/service/bill"
	categorysvc "github.com/granafacil/financeiro/pkg/service/category"
	dashboardsvc "github.com/granafacil/financeiro/pkg/service/dashboard"
	goalsvc "github.com/granafacil/financeiro/pkg/service/goal"
	transactionsvc "github.com/granafacil/financeiro/pkg/service/transaction"
	usersvc "github.com/granafacil/financeiro/pkg/service/user"
	"github.com/granafacil/financeiro/webapi"
)

// MemUoW is an in-memory repository.UnitOfWork. Do snapshots every store
// and restores them when the unit of work fails, mirroring a database
// rollback.
type MemUoW struct {
	Accounts     map[uuid.UUID]*account.Account
	Transactions map[uuid.UUID]*transaction.Transaction
	Categories   map[uuid.UUID]*category.Category
	Goals        map[uuid.UUID]*goal.Goal
	Bills        map[uuid.UUID]*bill.Bill
	Users        map[uuid.UUID]*user.User
}

// NewMemUoW creates an empty in-memory unit of work.
func NewMemUoW() *MemUoW {
	return &MemUoW{
		Accounts:     map[uuid.UUID]*account.Account{},
		Transactions: map[uuid.UUID]*transaction.Transaction{},
		Categories:   map[uuid.UUID]*category.Category{},
		Goals:        map[uuid.UUID]*goal.Goal{},
		Bills:        map[uuid.UUID]*bill.Bill{},
		Users:        map[uuid.UUID]*user.User{},
	}
}

func snapshot[T any](src map[uuid.UUID]*T) map[uuid.UUID]*T {
	out := make(map[uuid.UUID]*T, len(src))
	for id, v := range src {
		cp := *v
		out[id] = &cp
	}
	return out
}

// Do runs fn, restoring every store if it fails.
func (u *MemUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	accounts := snapshot(u.Accounts)
	transactions := snapshot(u.Transactions)
	categories := snapshot(u.Categories)
	goals := snapshot(u.Goals)
	bills := snapshot(u.Bills)
	users := snapshot(u.Users)
	if err := fn(u); err != nil {
		u.Accounts = accounts
		u.Transactions = transactions
		u.Categories = categories
		u.Goals = goals
		u.Bills = bills
		u.Users = users
		return err
	}
	return nil
}

func (u *MemUoW) AccountRepository() (accountrepo.Repository, error) {
	return &memAccounts{uow: u}, nil
}

func (u *MemUoW) TransactionRepository() (transactionrepo.Repository, error) {
	return &memTransactions{uow: u}, nil
}

func (u *MemUoW) CategoryRepository() (categoryrepo.Repository, error) {
	return &memCategories{uow: u}, nil
}

func (u *MemUoW) GoalRepository() (goalrepo.Repository, error) {
	return &memGoals{uow: u}, nil
}

func (u *MemUoW) BillRepository() (billrepo.Repository, error) {
	return &memBills{uow: u}, nil
}

func (u *MemUoW) UserRepository() (userrepo.Repository, error) {
	return &memUsers{uow: u}, nil
}

type memAccounts struct{ uow *MemUoW }

func (m *memAccounts) Create(ctx context.Context, a *account.Account) error {
	cp := *a
	m.uow.Accounts[a.ID] = &cp
	return nil
}

func (m *memAccounts) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := m.uow.Accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	var out []*account.Account
	for _, a := range m.uow.Accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memAccounts) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	a, ok := m.uow.Accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	if update.Name != nil {
		a.Name = *update.Name
	}
	if update.Type != nil {
		a.Type = account.Type(*update.Type)
	}
	if update.Balance != nil {
		a.Balance = *update.Balance
	}
	if update.InitialBalance != nil {
		a.InitialBalance = *update.InitialBalance
	}
	if update.Institution != nil {
		a.Institution = update.Institution
	}
	if update.Color != nil {
		a.Color = *update.Color
	}
	return nil
}

func (m *memAccounts) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.uow.Accounts[id]; !ok {
		return account.ErrAccountNotFound
	}
	delete(m.uow.Accounts, id)
	return nil
}

func (m *memAccounts) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	a, ok := m.uow.Accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

func (m *memAccounts) NetEffect(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	net := decimal.Zero
	for _, t := range m.uow.Transactions {
		if t.AccountID == id {
			net = net.Add(t.Effect().Signed())
		}
	}
	return net, nil
}

func (m *memAccounts) RecomputeBalance(ctx context.Context, id uuid.UUID) error {
	a, ok := m.uow.Accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	net, _ := m.NetEffect(ctx, id)
	a.Balance = a.InitialBalance.Add(net)
	return nil
}

func (m *memAccounts) RecomputeAllBalances(ctx context.Context) error {
	for id := range m.uow.Accounts {
		if err := m.RecomputeBalance(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

type memTransactions struct{ uow *MemUoW }

func (m *memTransactions) Create(ctx context.Context, t *transaction.Transaction) error {
	cp := *t
	m.uow.Transactions[t.ID] = &cp
	return nil
}

func (m *memTransactions) Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	t, ok := m.uow.Transactions[id]
	if !ok {
		return nil, transaction.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTransactions) ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range m.uow.Transactions {
		if t.UserID == userID && !t.Date.Before(from) && !t.Date.After(to) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (m *memTransactions) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for _, t := range m.uow.Transactions {
		if t.AccountID == accountID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memTransactions) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	t, ok := m.uow.Transactions[id]
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
	if _, ok := m.uow.Transactions[id]; !ok {
		return transaction.ErrTransactionNotFound
	}
	delete(m.uow.Transactions, id)
	return nil
}

func (m *memTransactions) TotalsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (dto.MonthTotals, error) {
	totals := dto.MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range m.uow.Transactions {
		if t.UserID != userID || t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		if t.Kind == transaction.KindIncome {
			totals.Income = totals.Income.Add(t.Amount)
		} else {
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals, nil
}

type memCategories struct{ uow *MemUoW }

func (m *memCategories) Create(ctx context.Context, c *category.Category) error {
	cp := *c
	m.uow.Categories[c.ID] = &cp
	return nil
}

func (m *memCategories) Get(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	c, ok := m.uow.Categories[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategories) ListByUser(ctx context.Context, userID uuid.UUID) ([]*category.Category, error) {
	var out []*category.Category
	for _, c := range m.uow.Categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) Update(ctx context.Context, id uuid.UUID, update dto.CategoryUpdate) error {
	c, ok := m.uow.Categories[id]
	if !ok {
		return category.ErrCategoryNotFound
	}
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Description != nil {
		c.Description = update.Description
	}
	if update.Color != nil {
		c.Color = *update.Color
	}
	if update.Kind != nil {
		c.Kind = category.Kind(*update.Kind)
	}
	return nil
}

func (m *memCategories) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.uow.Categories[id]; !ok {
		return category.ErrCategoryNotFound
	}
	delete(m.uow.Categories, id)
	// Referencing transactions become uncategorized, like ON DELETE SET NULL.
	for _, t := range m.uow.Transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	return nil
}

type memGoals struct{ uow *MemUoW }

func (m *memGoals) Create(ctx context.Context, g *goal.Goal) error {
	cp := *g
	m.uow.Goals[g.ID] = &cp
	return nil
}

func (m *memGoals) Get(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	g, ok := m.uow.Goals[id]
	if !ok {
		return nil, goal.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memGoals) ListByUser(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	var out []*goal.Goal
	for _, g := range m.uow.Goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Completed() != out[j].Completed() {
			return !out[i].Completed()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memGoals) Update(ctx context.Context, id uuid.UUID, update dto.GoalUpdate) error {
	g, ok := m.uow.Goals[id]
	if !ok {
		return goal.ErrGoalNotFound
	}
	if update.Title != nil {
		g.Title = *update.Title
	}
	if update.Description != nil {
		g.Description = update.Description
	}
	if update.TargetAmount != nil {
		g.TargetAmount = *update.TargetAmount
	}
	if update.CurrentAmount != nil {
		g.CurrentAmount = *update.CurrentAmount
	}
	if update.StartDate != nil {
		g.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		g.EndDate = update.EndDate
	}
	if update.Color != nil {
		g.Color = *update.Color
	}
	return nil
}

func (m *memGoals) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.uow.Goals[id]; !ok {
		return goal.ErrGoalNotFound
	}
	delete(m.uow.Goals, id)
	return nil
}

type memBills struct{ uow *MemUoW }

func (m *memBills) Create(ctx context.Context, b *bill.Bill) error {
	cp := *b
	m.uow.Bills[b.ID] = &cp
	return nil
}

func (m *memBills) Get(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	b, ok := m.uow.Bills[id]
	if !ok {
		return nil, bill.ErrBillNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBills) ListByUser(ctx context.Context, userID uuid.UUID) ([]*bill.Bill, error) {
	var out []*bill.Bill
	for _, b := range m.uow.Bills {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (m *memBills) Update(ctx context.Context, id uuid.UUID, update dto.BillUpdate) error {
	b, ok := m.uow.Bills[id]
	if !ok {
		return bill.ErrBillNotFound
	}
	if update.Kind != nil {
		b.Kind = bill.Kind(*update.Kind)
	}
	if update.Counterparty != nil {
		b.Counterparty = *update.Counterparty
	}
	if update.Description != nil {
		b.Description = update.Description
	}
	if update.TotalAmount != nil {
		b.TotalAmount = *update.TotalAmount
	}
	if update.DueDate != nil {
		b.DueDate = *update.DueDate
	}
	if update.Status != nil {
		b.Status = bill.Status(*update.Status)
	}
	if update.CategoryID != nil {
		b.CategoryID = update.CategoryID
	}
	return nil
}

func (m *memBills) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.uow.Bills[id]; !ok {
		return bill.ErrBillNotFound
	}
	delete(m.uow.Bills, id)
	return nil
}

func (m *memBills) CountPending(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range m.uow.Bills {
		if b.UserID == userID && b.Status == bill.StatusPending {
			n++
		}
	}
	return n, nil
}

func (m *memBills) ListPendingDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*bill.Bill, error) {
	var out []*bill.Bill
	for _, b := range m.uow.Bills {
		if b.UserID == userID && b.Status == bill.StatusPending &&
			!b.DueDate.Before(from) && !b.DueDate.After(to) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memUsers struct{ uow *MemUoW }

func (m *memUsers) Create(ctx context.Context, u *user.User) error {
	cp := *u
	m.uow.Users[u.ID] = &cp
	return nil
}

func (m *memUsers) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.uow.Users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.uow.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memUsers) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	u, ok := m.uow.Users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.AvatarURL != nil {
		u.AvatarURL = update.AvatarURL
	}
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.uow.Users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(m.uow.Users, id)
	return nil
}

// AppSuite boots the full Fiber app on the in-memory backend and provides
// request helpers. Embedding suites get a registered user and a valid token
// per test.
type AppSuite struct {
	suite.Suite
	App   *fiber.App
	Uow   *MemUoW
	Cfg   *config.App
	User  *user.User
	Token string
}

// TestConfig returns an App config suitable for handler tests.
func TestConfig(storageDir string) *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:    &config.Log{},
		DB:     &config.DB{},
		Jwt:    &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{
			MaxRequests: 1000,
			Window:      time.Minute,
		},
		Storage: &config.Storage{
			Dir:     storageDir,
			BaseURL: "http://localhost:3000/uploads",
			Bucket:  "receipts",
		},
		Reconcile: &config.Reconcile{Enabled: false},
	}
}

// SetupTest builds a fresh app, registers a user and logs them in.
func (s *AppSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Uow = NewMemUoW()
	s.Cfg = TestConfig(s.T().TempDir())

	reconciler := balance.NewReconciler(logger)
	authSvc := authsvc.NewJWT(s.Uow, *s.Cfg.Jwt, logger)
	s.App = webapi.New(webapi.Deps{
		Account:     accountsvc.New(s.Uow, reconciler, logger),
		Transaction: transactionsvc.New(s.Uow, reconciler, logger),
		Category:    categorysvc.New(s.Uow, logger),
		Goal:        goalsvc.New(s.Uow, logger),
		Bill:        billsvc.New(s.Uow, logger),
		Dashboard:   dashboardsvc.New(s.Uow, logger),
		User:        usersvc.New(s.Uow, logger),
		Auth:        authSvc,
		Uploader:    infrastorage.NewLocal(*s.Cfg.Storage),
	}, s.Cfg)

	u, err := user.NewUser("Maria", "maria@example.com", "password123")
	s.Require().NoError(err)
	s.Require().NoError((&memUsers{uow: s.Uow}).Create(context.Background(), u))
	s.User = u

	token, err := authSvc.GenerateToken(u)
	s.Require().NoError(err)
	s.Token = token
}

// MakeRequest performs a JSON request against the app, attaching the bearer
// token when one is given.
func (s *AppSuite) MakeRequest(method, path, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeData unmarshals the "data" field of a success envelope into out.
func (s *AppSuite) DecodeData(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint: errcheck
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NoError(json.Unmarshal(envelope.Data, out))
}
