package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/todoer/internal/app"
	"github.com/alexanderramin/todoer/internal/cli"
	"github.com/alexanderramin/todoer/internal/config"
	"github.com/alexanderramin/todoer/internal/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	load := func(ctx context.Context, configFile string) (*app.App, error) {
		cfg, err := config.Load(config.Options{ConfigFile: configFile})
		if err != nil {
			return nil, err
		}
		logger := newLogger(cfg)
		slog.SetDefault(logger)

		sched, err := cfg.SchedulerOptions()
		if err != nil {
			return nil, err
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		logger.DebugContext(ctx, "database opened", "path", cfg.DBPath)

		return app.Wire(database, app.Options{
			Scheduler: sched,
			LeadMin:   cfg.Reminders.LeadMin,
			Logger:    logger,
			LLM:       cfg.LLMClientConfig(),
			LLMLog:    os.Stderr,
		}), nil
	}

	return cli.NewRootCmd(load).ExecuteContext(ctx)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
