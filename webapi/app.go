// Package webapi assembles the Fiber application: global middleware, the
// health route, static receipt serving and every resource's routes.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/granafacil/financeiro/pkg/config"
	accountsvc "github.com/granafacil/financeiro/pkg/service/account"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	billsvc "github.com/granafacil/financeiro/pkg/service/bill"
	categorysvc "github.com/granafacil/financeiro/pkg/service/category"
	dashboardsvc "github.com/granafacil/financeiro/pkg/service/dashboard"
	goalsvc "github.com/granafacil/financeiro/pkg/service/goal"
	transactionsvc "github.com/granafacil/financeiro/pkg/service/transaction"
	usersvc "github.com/granafacil/financeiro/pkg/service/user"
	"github.com/granafacil/financeiro/pkg/storage"
	"github.com/granafacil/financeiro/webapi/account"
	"github.com/granafacil/financeiro/webapi/auth"
	"github.com/granafacil/financeiro/webapi/bill"
	"github.com/granafacil/financeiro/webapi/category"
	"github.com/granafacil/financeiro/webapi/common"
	"github.com/granafacil/financeiro/webapi/dashboard"
	"github.com/granafacil/financeiro/webapi/goal"
	"github.com/granafacil/financeiro/webapi/transaction"
	"github.com/granafacil/financeiro/webapi/user"
)

// Deps bundles the services the HTTP layer depends on.
type Deps struct {
	Account     *accountsvc.Service
	Transaction *transactionsvc.Service
	Category    *categorysvc.Service
	Goal        *goalsvc.Service
	Bill        *billsvc.Service
	Dashboard   *dashboardsvc.Service
	User        *usersvc.Service
	Auth        *authsvc.Service
	Uploader    storage.Uploader
}

// New builds the Fiber app with all middleware and routes registered.
func New(deps Deps, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "financeiro",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	// Receipts uploaded through the local store are served back here.
	app.Static("/uploads", cfg.Storage.Dir)

	auth.Routes(app, deps.Auth)
	user.Routes(app, deps.User, deps.Auth, cfg)
	account.Routes(app, deps.Account, deps.Auth, cfg)
	transaction.Routes(app, deps.Transaction, deps.Auth, deps.Uploader, cfg)
	category.Routes(app, deps.Category, deps.Auth, cfg)
	goal.Routes(app, deps.Goal, deps.Auth, cfg)
	bill.Routes(app, deps.Bill, deps.Auth, cfg)
	dashboard.Routes(app, deps.Dashboard, deps.Auth, cfg)

	return app
}
