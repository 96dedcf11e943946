package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/service/dashboard"
)

// SummaryResponse is the dashboard headline for one month.
type SummaryResponse struct {
	TotalBalance decimal.Decimal `json:"total_balance"`
	MonthIncome  decimal.Decimal `json:"month_income"`
	MonthExpense decimal.Decimal `json:"month_expense"`
	MonthNet     decimal.Decimal `json:"month_net"`
	PendingBills int64           `json:"pending_bills"`
}

// ToSummaryResponse maps the service aggregate to its public view.
func ToSummaryResponse(s *dashboard.Summary) SummaryResponse {
	return SummaryResponse{
		TotalBalance: s.TotalBalance,
		MonthIncome:  s.MonthIncome,
		MonthExpense: s.MonthExpense,
		MonthNet:     s.MonthNet,
		PendingBills: s.PendingBills,
	}
}
