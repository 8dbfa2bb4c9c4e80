// Package ledger keeps an SQLite audit trail of negotiation rounds and
// logical detection cycles. Records are stored in their wire encoding next
// to a few queryable columns.
package ledger

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/sensorview/internal/monitoring"
	"github.com/banshee-data/sensorview/internal/timeutil"
)

var logf = monitoring.Component("ledger")

// Ledger is a handle on the audit database. It is safe for concurrent use.
type Ledger struct {
	db    *sql.DB
	clock timeutil.Clock
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for recorded_at stamps and retry backoff.
func WithClock(c timeutil.Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// Open opens (or creates) the ledger at path and applies pending
// migrations.
func Open(path string, opts ...Option) (*Ledger, error) {
	l, err := OpenDB(path, opts...)
	if err != nil {
		return nil, err
	}
	if err := l.MigrateUp(); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}

// OpenDB opens the ledger database without touching its schema.
func OpenDB(path string, opts ...Option) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return New(db, opts...), nil
}

// New wraps an existing database without migrating it.
func New(db *sql.DB, opts ...Option) *Ledger {
	l := &Ledger{db: db, clock: timeutil.RealClock{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DB exposes the underlying database.
func (l *Ledger) DB() *sql.DB { return l.db }

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
