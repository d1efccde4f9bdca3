package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"iv-data/internal/export"
	"iv-data/internal/ingest"
	"iv-data/internal/sensibull"
	"iv-data/internal/store"
)

// RunFlow orchestrates the ingestion loop: trigger → metadata refresh →
// parallel IV fetch → done → wait → trigger. In "once" mode it returns after
// the first cycle; the returned error is non-nil when the metadata fetch
// failed (fatal to that run).
func RunFlow(cfg *Config, client *sensibull.Client, st *store.Store) error {
	progressUpdates := make(chan ingest.ProgressUpdate, 256)
	go ingest.RunProgressWriter(cfg.ProgressPath(), progressUpdates)

	shutdown := make(chan struct{})
	trigger := make(chan ingest.Cmd, 1)
	done := make(chan ingest.Done, 1)
	runErrs := make(chan error, 1)

	opts := ingest.Options{
		Workers:      cfg.FetchWorkers,
		DataDir:      cfg.DataDir,
		ProgressPath: cfg.ProgressPath(),
		ExportDir:    cfg.ExportDir(),
	}
	if cfg.ExportFormat != "" {
		opts.Exporter = export.NewPacketSaver(cfg.ExportFormat)
	}

	go func() {
		for range trigger {
			ctx := context.Background()
			symbols, err := ingest.RefreshMetadata(ctx, client, st)
			if err != nil {
				select {
				case runErrs <- err:
				default:
				}
				done <- ingest.Done{}
				continue
			}
			slog.Info("got symbols", "count", len(symbols))
			ingest.RunOneFetch(client, st, symbols, opts, progressUpdates, done, shutdown)
		}
	}()

	trigger <- ingest.Cmd{}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-done:
			var lastErr error
			select {
			case lastErr = <-runErrs:
			default:
			}
			if cfg.RunMode == "once" {
				return lastErr
			}
			if lastErr != nil {
				slog.Error("ingestion run failed", "error", lastErr)
			}
			slog.Info("done, wait until next run")
			nextRun := nextFetchRunTime(cfg)
			waitDur := time.Until(nextRun)
			if waitDur <= 0 {
				slog.Info("next run passed, running now", "next_run", nextRun.Format("2006-01-02 15:04"))
			} else {
				slog.Info("timer waiting", "hours", waitDur.Hours(), "until", nextRun.Format("2006-01-02 15:04"))
				timer := time.NewTimer(waitDur)
				select {
				case <-timer.C:
				case sig := <-signals:
					slog.Info("received signal, stopping", "sig", sig, "restart_at", nextRun.Format("2006-01-02 15:04"))
					timer.Stop()
					return nil
				}
			}
			trigger <- ingest.Cmd{}
		case sig := <-signals:
			slog.Info("received signal, graceful shutdown", "sig", sig)
			close(shutdown)
			<-done
			return nil
		}
	}
}

func nextFetchRunTime(cfg *Config) time.Time {
	now := time.Now().UTC()
	hour, min := cfg.RefreshHour, cfg.RefreshMinute
	targetToday := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, time.UTC)
	if now.Before(targetToday) {
		return targetToday
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), hour, min, 0, 0, time.UTC)
}
