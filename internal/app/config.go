package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds application configuration from env
type Config struct {
	DBPath        string `validate:"required"`
	APIBaseURL    string `validate:"required,url"`
	DataDir       string `validate:"required"`
	ExportFormat  string `validate:"omitempty,oneof=csv json parquet"`
	FetchWorkers  int    `validate:"min=1,max=64"`
	LogLevel      string `validate:"oneof=debug info warn error"`
	ListenAddr    string `validate:"required"`
	RunMode       string `validate:"oneof=once daily"` // once: single ingestion run; daily: rerun at RefreshHour:RefreshMinute
	RefreshHour   int    `validate:"min=0,max=23"`
	RefreshMinute int    `validate:"min=0,max=59"`
}

// LoadConfig reads config from environment and validates it
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBPath:        getEnv("DB_PATH", "sensibull.db"),
		APIBaseURL:    getEnv("API_BASE_URL", "https://oxide.sensibull.com"),
		DataDir:       getEnv("DATA_DIR", "data"),
		ExportFormat:  os.Getenv("EXPORT_FORMAT"),
		FetchWorkers:  8,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8501"),
		RunMode:       getEnv("RUN_MODE", "once"),
		RefreshHour:   0,
		RefreshMinute: 30,
	}
	if w := os.Getenv("FETCH_WORKERS"); w != "" {
		if v, err := strconv.Atoi(w); err == nil {
			cfg.FetchWorkers = v
		}
	}
	if h := os.Getenv("REFRESH_HOUR"); h != "" {
		if v, err := strconv.Atoi(h); err == nil {
			cfg.RefreshHour = v
		}
	}
	if m := os.Getenv("REFRESH_MINUTE"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			cfg.RefreshMinute = v
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ExportDir returns where raw per-symbol packets are dumped
func (c *Config) ExportDir() string {
	return filepath.Join(c.DataDir, "packets")
}

// ProgressPath returns path to .lastfetch.json
func (c *Config) ProgressPath() string {
	return filepath.Join(c.DataDir, ".lastfetch.json")
}
