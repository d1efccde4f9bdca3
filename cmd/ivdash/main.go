package main

import (
	"log/slog"
	"os"

	"iv-data/internal/app"
	"iv-data/internal/dashboard"
	"iv-data/internal/slogx"
	"iv-data/internal/store"
)

// App holds dashboard dependencies built by Wire.
type App struct {
	Config    *app.Config
	Store     *store.Store
	Dashboard *dashboard.Server
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
	slog.Info("dashboard listening", "addr", cfg.ListenAddr)

	if err := a.Dashboard.Run(); err != nil {
		slog.Error("dashboard stopped", "error", err)
		os.Exit(1)
	}
}
