package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/granafacil/financeiro/infra/initializer"
	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/webapi"
)

// @title Financeiro API
// @version 1.0.0
// @description Personal finance API: accounts, transactions, categories, goals, bills and a dashboard.
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	if deps.Cron != nil {
		defer deps.Cron.Stop()
	}

	app := webapi.New(deps.Web, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return app.Listen(addr)
}
