package webapi_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/webapi/bill"
	"github.com/granafacil/financeiro/webapi/dashboard"
	"github.com/granafacil/financeiro/webapi/testutils"
)

type BillTestSuite struct {
	testutils.AppSuite
}

func (s *BillTestSuite) createBill(counterparty string, due time.Time) bill.BillResponse {
	body := fmt.Sprintf(`{"kind":"payable","counterparty":"%s","total_amount":"120.00","due_date":"%s"}`,
		counterparty, due.Format(time.RFC3339))
	resp := s.MakeRequest("POST", "/bill", body, s.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out bill.BillResponse
	s.DecodeData(resp, &out)
	return out
}

func (s *BillTestSuite) TestCreateBill() {
	created := s.createBill("Enel", time.Now().Add(48*time.Hour))
	s.Equal("pending", created.Status)
	s.False(created.Overdue)
}

func (s *BillTestSuite) TestCreateBill_InvalidKind() {
	resp := s.MakeRequest("POST", "/bill", `{"kind":"loan","counterparty":"Enel","total_amount":"10.00","due_date":"2026-09-01T00:00:00Z"}`, s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *BillTestSuite) TestOverdueBill() {
	created := s.createBill("Enel", time.Now().Add(-24*time.Hour))
	s.True(created.Overdue)
}

func (s *BillTestSuite) TestSettleBill() {
	created := s.createBill("Enel", time.Now().Add(48*time.Hour))

	resp := s.MakeRequest("POST", "/bill/"+created.ID+"/settle", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var settled bill.BillResponse
	s.DecodeData(resp, &settled)
	s.Equal("settled", settled.Status)
	s.False(settled.Overdue)
}

func (s *BillTestSuite) TestDashboardSummaryAndUpcoming() {
	// Two accounts, one month of activity, two pending bills.
	resp := s.MakeRequest("POST", "/account", `{"name":"Nubank","balance":"500.00"}`, s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	resp = s.MakeRequest("POST", "/account", `{"name":"Caixa","type":"savings","balance":"100.00"}`, s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	s.createBill("Enel", time.Now().Add(48*time.Hour))
	s.createBill("Sabesp", time.Now().Add(240*time.Hour))
	settled := s.createBill("Vivo", time.Now().Add(24*time.Hour))
	resp = s.MakeRequest("POST", "/bill/"+settled.ID+"/settle", "", s.Token)
	resp.Body.Close() //nolint: errcheck

	resp = s.MakeRequest("GET", "/dashboard/summary", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var sum dashboard.SummaryResponse
	s.DecodeData(resp, &sum)
	s.True(sum.TotalBalance.Equal(decimal.RequireFromString("600.00")), "got %s", sum.TotalBalance)
	s.EqualValues(2, sum.PendingBills)

	// Only the bill due inside the next week shows up; the settled one never does.
	resp = s.MakeRequest("GET", "/dashboard/upcoming-bills", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var upcoming []bill.BillResponse
	s.DecodeData(resp, &upcoming)
	s.Require().Len(upcoming, 1)
	s.Equal("Enel", upcoming[0].Counterparty)
}

func TestBillTestSuite(t *testing.T) {
	suite.Run(t, new(BillTestSuite))
}
