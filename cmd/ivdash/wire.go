//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"iv-data/internal/app"
)

// InitializeApp builds App (Config + Store + Dashboard) via Wire.
// Caller must call a.Store.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideStore,
		app.ProvideDashboard,
		wire.Struct(new(App), "Config", "Store", "Dashboard"),
	)
	return nil, nil
}
