// Package store persists instrument reference data, derivative contracts and
// daily IV observations in a local sqlite database. All writes are upserts on
// natural keys, so re-ingestion is idempotent per row.
package store

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"iv-data/internal/ivstats"
	"iv-data/internal/model"
)

const upsertBatchSize = 500

// Store wraps the gorm handle. One Store per process; callers pass it down
// explicitly instead of going through a package-level connection.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and migrates
// the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// sqlite is single-writer; one pooled connection also keeps :memory:
	// databases coherent across goroutines.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Script{}, &model.IVBar{}, &model.FnoScript{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying sql connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertScripts replaces instrument reference rows keyed by instrument token.
func (s *Store) UpsertScripts(ctx context.Context, scripts []model.Script) error {
	if len(scripts) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "instrument_token"}},
		UpdateAll: true,
	}).CreateInBatches(scripts, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("upsert scripts: %w", err)
	}
	return nil
}

// UpsertFnoScripts replaces derivative contract rows keyed by the composite
// (underlying, expiry, expiry_type, option_type, strike) natural key.
func (s *Store) UpsertFnoScripts(ctx context.Context, contracts []model.FnoScript) error {
	if len(contracts) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "underlying"}, {Name: "expiry"}, {Name: "expiry_type"},
			{Name: "option_type"}, {Name: "strike"},
		},
		UpdateAll: true,
	}).CreateInBatches(contracts, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("upsert fno_scripts: %w", err)
	}
	return nil
}

// UpsertIVBars replaces daily observations keyed by (script, date).
func (s *Store) UpsertIVBars(ctx context.Context, bars []model.IVBar) error {
	if len(bars) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "script"}, {Name: "date"}},
		UpdateAll: true,
	}).CreateInBatches(bars, upsertBatchSize).Error
	if err != nil {
		return fmt.Errorf("upsert iv bars: %w", err)
	}
	return nil
}

// Tradingsymbols returns the distinct tradingsymbols of the scripts table,
// i.e. the symbols to fetch IV history for.
func (s *Store) Tradingsymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).Model(&model.Script{}).
		Distinct("tradingsymbol").
		Order("tradingsymbol").
		Pluck("tradingsymbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("list tradingsymbols: %w", err)
	}
	return symbols, nil
}

// JoinedIVSince returns scripts joined with their daily observations from
// cutoff (YYYY-MM-DD, inclusive) onward, ordered by date. This is the input
// slice for ivstats.Summarize.
func (s *Store) JoinedIVSince(ctx context.Context, cutoff string) ([]ivstats.Row, error) {
	var rows []ivstats.Row
	err := s.db.WithContext(ctx).
		Table("scripts s").
		Select("s.tradingsymbol, s.name, i.iv, i.date, i.close").
		Joins("JOIN iv i ON s.tradingsymbol = i.script").
		Where("i.date >= ?", cutoff).
		Order("i.date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query iv window: %w", err)
	}
	return rows, nil
}

// BarsSince returns the daily observations of one symbol from cutoff
// (YYYY-MM-DD, inclusive) onward, ordered by date.
func (s *Store) BarsSince(ctx context.Context, symbol, cutoff string) ([]model.IVBar, error) {
	var bars []model.IVBar
	err := s.db.WithContext(ctx).
		Where("script = ? AND date >= ?", symbol, cutoff).
		Order("date").
		Find(&bars).Error
	if err != nil {
		return nil, fmt.Errorf("query bars for %s: %w", symbol, err)
	}
	return bars, nil
}

// CountIVBars reports the number of stored observations for a symbol.
func (s *Store) CountIVBars(ctx context.Context, symbol string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.IVBar{}).
		Where("script = ?", symbol).Count(&n).Error
	return n, err
}
