package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/granafacil/financeiro/infra"
	infrarepo "github.com/granafacil/financeiro/infra/repository/uow"
	"github.com/granafacil/financeiro/pkg/config"
	accountsvc "github.com/granafacil/financeiro/pkg/service/account"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	"github.com/granafacil/financeiro/pkg/service/balance"
	usersvc "github.com/granafacil/financeiro/pkg/service/user"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create-user <name> <email>   Create a user, prompting for a password")
	fmt.Println("  login <email>                Verify credentials")
	fmt.Println("  recompute                    Recompute every stored account balance")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	// The CLI is quiet unless something goes wrong.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "create-user":
		if len(os.Args) < 4 {
			fmt.Println("Usage: cli create-user <name> <email>")
			os.Exit(1)
		}
		password, err := promptPassword()
		if err != nil {
			color.Red("Failed to read password: %v", err)
			os.Exit(1)
		}
		u, err := usersvc.New(uow, logger).Create(ctx, os.Args[2], os.Args[3], password)
		if err != nil {
			color.Red("Failed to create user: %v", err)
			os.Exit(1)
		}
		color.Green("User created: id=%s email=%s", u.ID, u.Email)
	case "login":
		if len(os.Args) < 3 {
			fmt.Println("Usage: cli login <email>")
			os.Exit(1)
		}
		password, err := promptPassword()
		if err != nil {
			color.Red("Failed to read password: %v", err)
			os.Exit(1)
		}
		u, err := authsvc.NewBasic(uow, logger).Login(ctx, os.Args[2], password)
		if err != nil {
			color.Red("Login failed: %v", err)
			os.Exit(1)
		}
		color.Green("Credentials OK for %s (id=%s)", u.Email, u.ID)
	case "recompute":
		svc := accountsvc.New(uow, balance.NewReconciler(logger), logger)
		if err := svc.RecomputeAll(ctx); err != nil {
			color.Red("Recompute failed: %v", err)
			os.Exit(1)
		}
		color.Green("All account balances recomputed")
	default:
		color.Yellow("Unknown command: %s", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
