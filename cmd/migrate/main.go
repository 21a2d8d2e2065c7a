package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/luckyegg/storefront-backend/pkg/config"
	"github.com/luckyegg/storefront-backend/pkg/db"
	"github.com/luckyegg/storefront-backend/pkg/logger"
	"github.com/luckyegg/storefront-backend/pkg/migrate"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: migrate <command> [args]

commands:
  up                  apply all pending migrations
  down                roll back the latest migration
  status              print migration status
  version             print the current DB version
  up-to <version>     migrate to a specific version (up or down)
  create <name>       scaffold a new SQL migration
  validate            check the shipped migration files`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]
	args := os.Args[2:]

	_ = godotenv.Load()

	if err := run(command, args); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "create":
		if len(args) != 1 {
			usage()
		}
		path, err := migrate.CreateSQLMigration(migrate.DefaultDir, args[0])
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "validate":
		return migrate.ValidateDir(migrate.DefaultDir)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "storefront-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer client.Close()

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	switch command {
	case "up", "down", "status", "version":
		return migrate.Run(ctx, sqlDB, migrate.DefaultDir, command, args...)
	case "up-to":
		if len(args) != 1 {
			usage()
		}
		return migrate.MigrateToVersion(ctx, sqlDB, migrate.DefaultDir, args[0])
	default:
		usage()
	}
	return nil
}
