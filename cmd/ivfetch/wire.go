//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"iv-data/internal/app"
)

// InitializeApp builds App (Config + Client + Store) via Wire.
// Caller must call a.Store.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideClient,
		app.ProvideStore,
		wire.Struct(new(App), "Config", "Client", "Store"),
	)
	return nil, nil
}
