package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"DB_PATH", "API_BASE_URL", "DATA_DIR", "EXPORT_FORMAT", "FETCH_WORKERS",
		"LOG_LEVEL", "LISTEN_ADDR", "RUN_MODE", "REFRESH_HOUR", "REFRESH_MINUTE",
	} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "sensibull.db", cfg.DBPath)
	require.Equal(t, "https://oxide.sensibull.com", cfg.APIBaseURL)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 8, cfg.FetchWorkers)
	require.Equal(t, "once", cfg.RunMode)
	require.Equal(t, ":8501", cfg.ListenAddr)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_PATH", "/tmp/iv.db")
	t.Setenv("DATA_DIR", "")
	t.Setenv("FETCH_WORKERS", "4")
	t.Setenv("EXPORT_FORMAT", "parquet")
	t.Setenv("RUN_MODE", "daily")
	t.Setenv("REFRESH_HOUR", "6")
	t.Setenv("REFRESH_MINUTE", "15")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "/tmp/iv.db", cfg.DBPath)
	require.Equal(t, 4, cfg.FetchWorkers)
	require.Equal(t, "parquet", cfg.ExportFormat)
	require.Equal(t, "daily", cfg.RunMode)
	require.Equal(t, 6, cfg.RefreshHour)
	require.Equal(t, 15, cfg.RefreshMinute)
	require.Equal(t, "data/packets", cfg.ExportDir())
	require.Equal(t, "data/.lastfetch.json", cfg.ProgressPath())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("EXPORT_FORMAT", "xml")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("EXPORT_FORMAT", "")
	t.Setenv("FETCH_WORKERS", "0")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("FETCH_WORKERS", "")
	t.Setenv("RUN_MODE", "hourly")
	_, err = LoadConfig()
	require.Error(t, err)
}
