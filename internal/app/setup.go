package app

import (
	"fmt"

	"iv-data/internal/sensibull"
	"iv-data/internal/store"
)

// CreateClient creates the upstream API client from config.
func CreateClient(cfg *Config) *sensibull.Client {
	return sensibull.NewClient(cfg.APIBaseURL)
}

// OpenStore opens the sqlite store at the configured path and migrates the
// schema. Caller must Close it when shutting down.
func OpenStore(cfg *Config) (*store.Store, error) {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.DBPath, err)
	}
	return st, nil
}
