package webapi_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/granafacil/financeiro/webapi/account"
	"github.com/granafacil/financeiro/webapi/testutils"
	"github.com/granafacil/financeiro/webapi/transaction"
)

type TransactionTestSuite struct {
	testutils.AppSuite
	acct  account.AccountResponse
	other account.AccountResponse
}

func (s *TransactionTestSuite) SetupTest() {
	s.AppSuite.SetupTest()
	s.acct = s.createAccount(`{"name":"Nubank","balance":"500.00"}`)
	s.other = s.createAccount(`{"name":"Caixa","type":"savings","balance":"100.00"}`)
}

func (s *TransactionTestSuite) createAccount(body string) account.AccountResponse {
	resp := s.MakeRequest("POST", "/account", body, s.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out account.AccountResponse
	s.DecodeData(resp, &out)
	return out
}

func (s *TransactionTestSuite) createTransaction(accountID, amount, kind string) transaction.TransactionResponse {
	body := fmt.Sprintf(`{"account_id":"%s","description":"mercado","amount":"%s","kind":"%s","date":"2026-08-10T12:00:00Z"}`,
		accountID, amount, kind)
	resp := s.MakeRequest("POST", "/transaction", body, s.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out transaction.TransactionResponse
	s.DecodeData(resp, &out)
	return out
}

func (s *TransactionTestSuite) balanceOf(id string) decimal.Decimal {
	resp := s.MakeRequest("GET", "/account/"+id, "", s.Token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out account.AccountResponse
	s.DecodeData(resp, &out)
	return out.Balance
}

func (s *TransactionTestSuite) TestCreateAdjustsBalance() {
	s.createTransaction(s.acct.ID, "200.00", "income")
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("700.00")))

	s.createTransaction(s.acct.ID, "50.00", "expense")
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("650.00")))
}

func (s *TransactionTestSuite) TestCreate_NegativeAmount() {
	body := fmt.Sprintf(`{"account_id":"%s","description":"mercado","amount":"-5.00","kind":"expense","date":"2026-08-10T12:00:00Z"}`, s.acct.ID)
	resp := s.MakeRequest("POST", "/transaction", body, s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("500.00")))
}

func (s *TransactionTestSuite) TestCreate_UnknownAccount() {
	body := `{"account_id":"6e9cf1a2-58c5-4f0a-9f6e-0f40a1b2c3d4","description":"mercado","amount":"5.00","kind":"expense","date":"2026-08-10T12:00:00Z"}`
	resp := s.MakeRequest("POST", "/transaction", body, s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionTestSuite) TestUpdate_SameAccount() {
	t := s.createTransaction(s.acct.ID, "200.00", "income")

	body := fmt.Sprintf(`{"account_id":"%s","description":"salário","amount":"150.00","kind":"income","date":"2026-08-10T12:00:00Z"}`, s.acct.ID)
	resp := s.MakeRequest("PUT", "/transaction/"+t.ID, body, s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("650.00")), "got %s", s.balanceOf(s.acct.ID))
}

func (s *TransactionTestSuite) TestUpdate_MoveBetweenAccounts() {
	t := s.createTransaction(s.acct.ID, "100.00", "income")

	body := fmt.Sprintf(`{"account_id":"%s","description":"mercado","amount":"100.00","kind":"income","date":"2026-08-10T12:00:00Z"}`, s.other.ID)
	resp := s.MakeRequest("PUT", "/transaction/"+t.ID, body, s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("500.00")))
	s.True(s.balanceOf(s.other.ID).Equal(decimal.RequireFromString("200.00")))
}

func (s *TransactionTestSuite) TestDeleteReversesEffect() {
	t := s.createTransaction(s.acct.ID, "50.00", "expense")
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("450.00")))

	resp := s.MakeRequest("DELETE", "/transaction/"+t.ID, "", s.Token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("500.00")))
}

func (s *TransactionTestSuite) TestListMonthFilters() {
	s.createTransaction(s.acct.ID, "200.00", "income")
	s.createTransaction(s.acct.ID, "50.00", "expense")

	resp := s.MakeRequest("GET", "/transaction?month=2026-08", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var list []transaction.TransactionResponse
	s.DecodeData(resp, &list)
	s.Len(list, 2)

	resp = s.MakeRequest("GET", "/transaction?month=2026-07", "", s.Token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.DecodeData(resp, &list)
	s.Empty(list)
}

func (s *TransactionTestSuite) TestListMonth_BadFormat() {
	resp := s.MakeRequest("GET", "/transaction?month=August", "", s.Token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *TransactionTestSuite) TestUploadReceipt() {
	t := s.createTransaction(s.acct.ID, "50.00", "expense")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="receipt.png"`)
	header.Set("Content-Type", "image/png")
	part, err := w.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write([]byte("\x89PNG fake image bytes"))
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req, err := http.NewRequest("POST", "/transaction/"+t.ID+"/receipt", &buf)
	s.Require().NoError(err)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+s.Token)
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var updated transaction.TransactionResponse
	s.DecodeData(resp, &updated)
	s.Require().NotNil(updated.ReceiptURL)
	s.Contains(*updated.ReceiptURL, "/uploads/receipts/"+t.ID)

	// The upload never touches the balance.
	s.True(s.balanceOf(s.acct.ID).Equal(decimal.RequireFromString("450.00")))
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
