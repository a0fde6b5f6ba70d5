package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"bookshare/internal/config"
	"bookshare/internal/platform/logger"
	"bookshare/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

var errNameRequired = errors.New("name is required for 'create' command")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(cfg.AppName+"-migrate", cfg.Env)
	cfg.LogWarnings(log)

	var db *sql.DB
	if *command != "create" {
		pool, err := postgres.NewPool(context.Background(), cfg.DBDSN, 2, 0)
		if err != nil {
			log.WithError(err).WithField("dsn", cfg.RedactedDSN()).Fatal("failed to connect to database")
		}
		defer pool.Close()

		db = stdlib.OpenDBFromPool(pool)
		defer db.Close()
	}

	if err := run(db, *command, *name, cfg.MigrationsDir); err != nil {
		log.WithError(err).WithField("command", *command).Fatal("migration failed")
	}
	log.WithField("command", *command).Info("migration command completed")
}

func run(db *sql.DB, command, name, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	case "create":
		if name == "" {
			return errNameRequired
		}
		return goose.Create(nil, dir, name, "sql")
	default:
		return fmt.Errorf("unknown command: %s. Use: up, down, status, create", command)
	}
}
