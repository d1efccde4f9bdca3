package app

import (
	"iv-data/internal/dashboard"
	"iv-data/internal/sensibull"
	"iv-data/internal/store"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideClient creates the upstream API client (for Wire).
func ProvideClient(cfg *Config) *sensibull.Client {
	return CreateClient(cfg)
}

// ProvideStore opens the sqlite store (for Wire).
// Caller must call st.Close() when shutting down.
func ProvideStore(cfg *Config) (*store.Store, error) {
	return OpenStore(cfg)
}

// ProvideDashboard creates the dashboard server over the store (for Wire).
func ProvideDashboard(cfg *Config, st *store.Store) *dashboard.Server {
	return dashboard.NewServer(st, cfg.ListenAddr)
}
