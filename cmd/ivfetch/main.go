package main

import (
	"log/slog"
	"os"

	"iv-data/internal/app"
	"iv-data/internal/sensibull"
	"iv-data/internal/slogx"
	"iv-data/internal/store"
)

// App holds ingestion dependencies built by Wire.
type App struct {
	Config *app.Config
	Client *sensibull.Client
	Store  *store.Store
}

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer a.Store.Close()

	cfg := a.Config
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel))
	slog.Info("using store", "path", cfg.DBPath)
	slog.Info("upstream", "base_url", cfg.APIBaseURL)

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}
	if cfg.ExportFormat != "" {
		if err := os.MkdirAll(cfg.ExportDir(), 0755); err != nil {
			slog.Error("failed to create export dir", "error", err)
			os.Exit(1)
		}
		slog.Info("packet export", "dir", cfg.ExportDir(), "format", cfg.ExportFormat)
	}
	slog.Info("parallel mode", "workers", cfg.FetchWorkers, "mode", cfg.RunMode)

	if err := app.RunFlow(cfg, a.Client, a.Store); err != nil {
		slog.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}
