package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/mvribeiro/talpha/internal/services"
	"github.com/mvribeiro/talpha/internal/session"
	"github.com/mvribeiro/talpha/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}

	var store session.Store
	if _, err := os.Stat(config.Session.Path); err == nil {
		db, err := shared.NewDatabase(config.Session.Path, config.Session.MaxOpenConns, config.Session.MaxIdleConns)
		if err != nil {
			logger.Warn("failed to open session database", "path", config.Session.Path, "error", err)
		} else {
			defer db.Close()
			store = session.NewSQLiteStore(db)
		}
	}

	httpClient := &http.Client{Timeout: time.Duration(config.API.TimeoutSeconds) * time.Second}
	client := services.NewClient(config.API.BaseURL, httpClient, store)

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Auth:    client,
		API:     client,
		Session: store,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "talpha",
		Usage:    "Admin console for the t-alpha product management API",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
