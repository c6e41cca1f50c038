// Package history persists pricing quotes to SQLite so rate movement
// can be inspected over time. The store is append-only with pruning.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/pricing"
)

// Store records quotes in a local SQLite database.
type Store struct {
	db *sql.DB

	insertStmt *sql.Stmt
	recentStmt *sql.Stmt
	trendStmt  *sql.Stmt
	pruneStmt  *sql.Stmt
}

// StoreConfig configures the history store.
type StoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS quote_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	provider TEXT NOT NULL,
	hardware TEXT NOT NULL,
	region TEXT NOT NULL DEFAULT '',
	hourly_usd REAL NOT NULL,
	confidence TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quote_history_lookup
	ON quote_history (provider, hardware, fetched_at);
`

// NewStore opens (creating if needed) the quote history database.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.prepare(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) prepare() error {
	var err error
	s.insertStmt, err = s.db.Prepare(`
		INSERT INTO quote_history (provider, hardware, region, hourly_usd, confidence, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}

	s.recentStmt, err = s.db.Prepare(`
		SELECT provider, hardware, region, hourly_usd, confidence, fetched_at
		FROM quote_history
		WHERE provider = ? AND hardware = ?
		ORDER BY fetched_at DESC
		LIMIT ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare recent query: %w", err)
	}

	s.trendStmt, err = s.db.Prepare(`
		SELECT COUNT(*), AVG(hourly_usd), MIN(hourly_usd), MAX(hourly_usd)
		FROM quote_history
		WHERE provider = ? AND hardware = ? AND fetched_at >= ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare trend query: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`
		DELETE FROM quote_history WHERE fetched_at < ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare prune: %w", err)
	}
	return nil
}

// Record appends a quote to the history.
func (s *Store) Record(ctx context.Context, q pricing.Quote) error {
	_, err := s.insertStmt.ExecContext(ctx,
		q.Provider, string(q.Hardware), q.Region,
		q.HourlyUSD, string(q.Confidence), q.FetchedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record quote: %w", err)
	}
	return nil
}

// Recent returns the latest quotes for a provider and hardware class,
// newest first.
func (s *Store) Recent(ctx context.Context, provider string, class hardware.Class, limit int) ([]pricing.Quote, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.recentStmt.QueryContext(ctx, provider, string(class), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []pricing.Quote
	for rows.Next() {
		var (
			q         pricing.Quote
			hw, conf  string
			fetchedAt int64
		)
		if err := rows.Scan(&q.Provider, &hw, &q.Region, &q.HourlyUSD, &conf, &fetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.Hardware = hardware.Class(hw)
		q.Confidence = pricing.Confidence(conf)
		q.FetchedAt = time.Unix(fetchedAt, 0).UTC()
		out = append(out, q)
	}
	return out, rows.Err()
}

// Trend summarizes rate movement for a provider and hardware class over
// a trailing window.
type Trend struct {
	// Samples is how many quotes fell inside the window.
	Samples int `json:"samples"`

	// AvgUSD, MinUSD, MaxUSD summarize the hourly rate over the window.
	AvgUSD float64 `json:"avg_usd"`
	MinUSD float64 `json:"min_usd"`
	MaxUSD float64 `json:"max_usd"`
}

// TrendSince computes the rate trend over the window ending now.
func (s *Store) TrendSince(ctx context.Context, provider string, class hardware.Class, window time.Duration) (Trend, error) {
	cutoff := time.Now().Add(-window).Unix()

	var (
		t   Trend
		avg sql.NullFloat64
		min sql.NullFloat64
		max sql.NullFloat64
	)
	row := s.trendStmt.QueryRowContext(ctx, provider, string(class), cutoff)
	if err := row.Scan(&t.Samples, &avg, &min, &max); err != nil {
		return Trend{}, fmt.Errorf("failed to compute trend: %w", err)
	}
	t.AvgUSD = avg.Float64
	t.MinUSD = min.Float64
	t.MaxUSD = max.Float64
	return t, nil
}

// Prune removes quotes older than the retention window and returns how
// many rows were deleted.
func (s *Store) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := s.pruneStmt.ExecContext(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the prepared statements and the database handle.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStmt, s.recentStmt, s.trendStmt, s.pruneStmt} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
	return s.db.Close()
}
