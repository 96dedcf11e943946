// Package common holds the response envelope, problem-details rendering and
// request binding shared by all web API handlers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/granafacil/financeiro/pkg/domain"
	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/domain/goal"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/domain/user"
	"github.com/granafacil/financeiro/pkg/storage"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details.
func ErrorResponseJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// ProblemDetailsJSON renders err as a problem-details response. Optional
// trailing arguments refine the response: a string overrides the detail
// text, an int overrides the status code. Without an explicit status the
// code is derived from the error.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extras ...any) error {
	status := 0
	detail := ""
	for _, extra := range extras {
		switch v := extra.(type) {
		case string:
			detail = v
		case int:
			status = v
		}
	}
	if status == 0 {
		if err != nil {
			status = ErrorToStatusCode(err)
		} else {
			status = fiber.StatusBadRequest
		}
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}
	return ErrorResponseJSON(c, status, title, detail)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, goal.ErrGoalNotFound),
		errors.Is(err, bill.ErrBillNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, account.ErrNotOwner),
		errors.Is(err, transaction.ErrNotOwner),
		errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, user.ErrUserUnauthorized),
		errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrWriteConflict):
		return fiber.StatusConflict
	case errors.Is(err, transaction.ErrAmountMustBePositive),
		errors.Is(err, transaction.ErrInvalidKind),
		errors.Is(err, transaction.ErrDescriptionRequired),
		errors.Is(err, transaction.ErrAccountRequired),
		errors.Is(err, account.ErrNameRequired),
		errors.Is(err, account.ErrInvalidType),
		errors.Is(err, category.ErrNameRequired),
		errors.Is(err, category.ErrInvalidKind),
		errors.Is(err, goal.ErrTitleRequired),
		errors.Is(err, goal.ErrTargetMustBePositive),
		errors.Is(err, goal.ErrCurrentAmountNegative),
		errors.Is(err, bill.ErrCounterpartyRequired),
		errors.Is(err, bill.ErrAmountMustBePositive),
		errors.Is(err, bill.ErrInvalidKind),
		errors.Is(err, bill.ErrInvalidStatus),
		errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrUnsupportedType):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. Returns the populated struct, or writes an error
// response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
