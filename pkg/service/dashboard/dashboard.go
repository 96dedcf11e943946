// Package dashboard aggregates the numbers shown on the home screen: total
// balance, month income and expense, pending bills and the next due dates.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/repository"
)

// Upcoming bills cover the next week, capped to keep the card short.
const (
	upcomingWindow = 7 * 24 * time.Hour
	upcomingLimit  = 5
)

// Service provides read-only aggregations for the dashboard.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new dashboard Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Summary is the dashboard headline for one month.
type Summary struct {
	TotalBalance decimal.Decimal
	MonthIncome  decimal.Decimal
	MonthExpense decimal.Decimal
	MonthNet     decimal.Decimal
	PendingBills int64
}

// MonthSummary aggregates the user's numbers for the month containing ref.
func (s *Service) MonthSummary(ctx context.Context, userID uuid.UUID, ref time.Time) (sum *Summary, err error) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err := accounts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, a := range list {
			total = total.Add(a.Balance)
		}

		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		totals, err := transactions.TotalsBetween(ctx, userID, from, to)
		if err != nil {
			return err
		}

		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		pending, err := bills.CountPending(ctx, userID)
		if err != nil {
			return err
		}

		sum = &Summary{
			TotalBalance: total,
			MonthIncome:  totals.Income,
			MonthExpense: totals.Expense,
			MonthNet:     totals.Net(),
			PendingBills: pending,
		}
		return nil
	})
	if err != nil {
		sum = nil
		s.logger.Error("dashboard summary failed", "user_id", userID, "error", err)
	}
	return
}

// UpcomingBills lists the user's pending bills due within the next week,
// earliest first, at most five.
func (s *Service) UpcomingBills(ctx context.Context, userID uuid.UUID, now time.Time) (list []*bill.Bill, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		list, err = bills.ListPendingDueBetween(ctx, userID, now, now.Add(upcomingWindow), upcomingLimit)
		return err
	})
	return
}
