// Package dashboard exposes the read-only home screen aggregations.
package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	dashboardsvc "github.com/granafacil/financeiro/pkg/service/dashboard"
	"github.com/granafacil/financeiro/webapi/bill"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for the dashboard. All routes require a
// valid token.
//
// Routes:
//   - GET /dashboard/summary        : Month totals (?month=2026-08, default current).
//   - GET /dashboard/upcoming-bills : Pending bills due within the next week.
func Routes(app *fiber.App, dashboardSvc *dashboardsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Get("/dashboard/summary", jwt, Summary(dashboardSvc, authSvc))
	app.Get("/dashboard/upcoming-bills", jwt, UpcomingBills(dashboardSvc, authSvc))
}

// monthOf resolves the ?month=YYYY-MM query parameter, defaulting to now.
func monthOf(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", raw)
}

// Summary returns a Fiber handler with the month's headline numbers.
// @Summary Dashboard summary
// @Description Total balance across accounts plus income, expense and net for the month, and the pending bill count.
// @Tags dashboard
// @Produce json
// @Param month query string false "Month as YYYY-MM, default current"
// @Success 200 {object} common.Response "Summary fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /dashboard/summary [get]
// @Security Bearer
func Summary(dashboardSvc *dashboardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		ref, err := monthOf(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid month", err, "Month must be formatted as YYYY-MM", fiber.StatusBadRequest)
		}
		sum, err := dashboardSvc.MonthSummary(c.Context(), userID, ref)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build summary", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Summary fetched", ToSummaryResponse(sum))
	}
}

// UpcomingBills returns a Fiber handler listing the pending bills due soon.
// @Summary Upcoming bills
// @Tags dashboard
// @Produce json
// @Success 200 {object} common.Response "Upcoming bills fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /dashboard/upcoming-bills [get]
// @Security Bearer
func UpcomingBills(dashboardSvc *dashboardsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		now := time.Now()
		list, err := dashboardSvc.UpcomingBills(c.Context(), userID, now)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list upcoming bills", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Upcoming bills fetched", bill.ToBillResponses(list, now))
	}
}
