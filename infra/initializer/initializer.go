// Package initializer wires the application together: logger, database,
// unit of work, services, the HTTP layer's dependency bundle and the
// scheduled balance recompute.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/granafacil/financeiro/infra"
	infrarepo "github.com/granafacil/financeiro/infra/repository/uow"
	infrastorage "github.com/granafacil/financeiro/infra/storage"
	"github.com/granafacil/financeiro/pkg/config"
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

const recomputeTimeout = 5 * time.Minute

// Deps holds everything the binaries need after startup.
type Deps struct {
	Logger *slog.Logger
	Web    webapi.Deps
	Cron   *cron.Cron
}

// InitializeDependencies builds the full dependency graph from configuration.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	reconciler := balance.NewReconciler(logger)

	accountSvc := accountsvc.New(uow, reconciler, logger)

	deps := &Deps{
		Logger: logger,
		Web: webapi.Deps{
			Account:     accountSvc,
			Transaction: transactionsvc.New(uow, reconciler, logger),
			Category:    categorysvc.New(uow, logger),
			Goal:        goalsvc.New(uow, logger),
			Bill:        billsvc.New(uow, logger),
			Dashboard:   dashboardsvc.New(uow, logger),
			User:        usersvc.New(uow, logger),
			Auth:        authsvc.NewJWT(uow, *cfg.Jwt, logger),
			Uploader:    infrastorage.NewLocal(*cfg.Storage),
		},
	}

	if cfg.Reconcile.Enabled {
		deps.Cron, err = scheduleRecompute(cfg.Reconcile.Schedule, accountSvc, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule balance recompute: %w", err)
		}
	}

	return deps, nil
}

// scheduleRecompute runs the stored-balance backstop on the configured cron
// schedule. Recompute failures are logged, never fatal.
func scheduleRecompute(schedule string, accountSvc *accountsvc.Service, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), recomputeTimeout)
		defer cancel()
		if err := accountSvc.RecomputeAll(ctx); err != nil {
			logger.Error("scheduled balance recompute failed", "error", err)
			return
		}
		logger.Info("scheduled balance recompute finished")
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logger.Info("balance recompute scheduled", "schedule", schedule)
	return c, nil
}
