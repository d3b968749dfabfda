package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/videohub/videohub/internal/services"
	"github.com/videohub/videohub/internal/shared"
)

func main() {
	godotenv.Load()

	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	shared.ApplyEnv(config)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	source := services.NewNotionService(services.NotionOpts{
		BaseURL:    config.Notion.BaseURL,
		APIKey:     config.Notion.APIKey,
		DatabaseID: config.Notion.DatabaseID,
		Version:    config.Notion.Version,
		RateLimit:  config.Notion.RateLimit,
		HTTPClient: httpClient,
	})

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Source:     source,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "videohub",
		Usage:    "Fetch, snapshot, and serve a Notion video catalog",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
