package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"iv-data/internal/sensibull"
	"iv-data/internal/store"
)

// RefreshMetadata fetches the instrument metacache and replaces the reference
// tables: futures, then options, then the underlyer scripts. A failure here
// aborts the run; without the symbol universe there is nothing to fetch.
// Returns the tradingsymbols to fetch IV history for.
func RefreshMetadata(ctx context.Context, client *sensibull.Client, st *store.Store) ([]string, error) {
	mc, err := client.InstrumentMetacache(ctx)
	if err != nil {
		return nil, err
	}

	futures := mc.Futures()
	if err := st.UpsertFnoScripts(ctx, futures); err != nil {
		return nil, fmt.Errorf("store futures: %w", err)
	}
	slog.Info("metadata futures", "rows", len(futures))

	options := mc.Options()
	if err := st.UpsertFnoScripts(ctx, options); err != nil {
		return nil, fmt.Errorf("store options: %w", err)
	}
	slog.Info("metadata options", "rows", len(options))

	scripts := mc.Underlyers()
	if err := st.UpsertScripts(ctx, scripts); err != nil {
		return nil, fmt.Errorf("store scripts: %w", err)
	}
	slog.Info("metadata scripts", "rows", len(scripts))

	symbols, err := st.Tradingsymbols(ctx)
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
