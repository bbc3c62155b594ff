// Command migrate manages the blog schema. Without flags it applies pending
// migrations; -down reverts the last one; -reset drops everything and
// recreates empty tables.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/flagx"
	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func run() error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	reset := fs.Bool("reset", false, "drop all tables and migrate from scratch")
	down := fs.Bool("down", false, "roll back the most recent migration")
	_ = fs.Parse(flagx.FilterBoolArgs(os.Args[1:], []string{"-reset", "-down"}))

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel).With("module", "migrate")

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()

	switch {
	case *reset:
		logger.Info(ctx, "resetting database")
		err = m.ResetDatabase(ctx, db)
	case *down:
		logger.Info(ctx, "rolling back last migration")
		err = m.RollbackMigration(ctx, db)
	default:
		logger.Info(ctx, "applying migrations")
		err = m.RunMigrations(ctx, db)
	}
	if err != nil {
		return err
	}
	logger.Info(ctx, "done")
	return nil
}
