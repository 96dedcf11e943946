package webapi_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/webapi/account"
	"github.com/granafacil/financeiro/webapi/testutils"
)

type AccountTestSuite struct {
	testutils.AppSuite
}

func (s *AccountTestSuite) createAccount(body string) account.AccountResponse {
	resp := s.MakeRequest("POST", "/account", body, s.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out account.AccountResponse
	s.DecodeData(resp, &out)
	return out
}

func (s *AccountTestSuite) TestCreateAccount() {
	created := s.createAccount(`{"name":"Nubank","type":"checking","balance":"500.00"}`)
	s.Equal("Nubank", created.Name)
	s.True(created.Balance.Equal(decimal.RequireFromString("500.00")))
}

func (s *AccountTestSuite) TestCreateAccount_InvalidType() {
	resp := s.MakeRequest("POST", "/account", `{"name":"Nubank","type":"offshore"}`, s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *AccountTestSuite) TestListAccounts() {
	s.createAccount(`{"name":"Nubank","balance":"500.00"}`)
	s.createAccount(`{"name":"Caixa","type":"savings","balance":"100.00"}`)

	resp := s.MakeRequest("GET", "/account", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var list []account.AccountResponse
	s.DecodeData(resp, &list)
	s.Len(list, 2)
}

func (s *AccountTestSuite) TestGetAccount_NotFound() {
	resp := s.MakeRequest("GET", "/account/6e9cf1a2-58c5-4f0a-9f6e-0f40a1b2c3d4", "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *AccountTestSuite) TestGetAccount_BadID() {
	resp := s.MakeRequest("GET", "/account/not-a-uuid", "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

// Editing the balance re-derives the baseline, so recorded transactions keep
// adding up to the requested balance.
func (s *AccountTestSuite) TestUpdateAccount_BalanceEdit() {
	created := s.createAccount(`{"name":"Nubank","balance":"500.00"}`)

	tx := fmt.Sprintf(`{"account_id":"%s","description":"salário","amount":"200.00","kind":"income","date":"2026-08-10T00:00:00Z"}`, created.ID)
	resp := s.MakeRequest("POST", "/transaction", tx, s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest("PUT", "/account/"+created.ID, `{"balance":"1000.00"}`, s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var updated account.AccountResponse
	s.DecodeData(resp, &updated)
	s.True(updated.Balance.Equal(decimal.RequireFromString("1000.00")), "got %s", updated.Balance)

	// Recompute must be a no-op: baseline was re-derived as 1000 - 200.
	resp = s.MakeRequest("POST", "/account/"+created.ID+"/recompute", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var recomputed account.AccountResponse
	s.DecodeData(resp, &recomputed)
	s.True(recomputed.Balance.Equal(decimal.RequireFromString("1000.00")), "got %s", recomputed.Balance)
}

func (s *AccountTestSuite) TestDeleteAccount() {
	created := s.createAccount(`{"name":"Nubank"}`)

	resp := s.MakeRequest("DELETE", "/account/"+created.ID, "", s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest("GET", "/account/"+created.ID, "", s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func TestAccountTestSuite(t *testing.T) {
	suite.Run(t, new(AccountTestSuite))
}
