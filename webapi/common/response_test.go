package common

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/domain/user"
)

func TestErrorToStatusCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{account.ErrAccountNotFound, fiber.StatusNotFound},
		{transaction.ErrTransactionNotFound, fiber.StatusNotFound},
		{transaction.ErrNotOwner, fiber.StatusForbidden},
		{transaction.ErrAmountMustBePositive, fiber.StatusBadRequest},
		{transaction.ErrInvalidKind, fiber.StatusBadRequest},
		{user.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrWriteConflict, fiber.StatusConflict},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ErrorToStatusCode(tc.err), "error %v", tc.err)
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Failed to fetch account", account.ErrAccountNotFound)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))

	body, _ := io.ReadAll(resp.Body)
	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(body, &pd))
	assert.Equal(t, "Failed to fetch account", pd.Title)
	assert.Equal(t, fiber.StatusNotFound, pd.Status)
	assert.Equal(t, "account not found", pd.Detail)
	assert.Equal(t, "/boom", pd.Instance)
}

func TestProblemDetailsJSONExplicitStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/unauthorized", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/unauthorized", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSuccessResponseJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusCreated, "created", fiber.Map{"id": "abc"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var r Response
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, fiber.StatusCreated, r.Status)
	assert.Equal(t, "created", r.Message)
}

func TestBindAndValidate(t *testing.T) {
	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	app := fiber.New()
	app.Post("/bind", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[payload](c)
		if input == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "bound", input)
	})

	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"name":"Mercado"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`not-json`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
