package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Thys1a/WebAccounting/internal/common"
	"github.com/Thys1a/WebAccounting/internal/service"
)

// SQLiteStore implements service.Store on a single SQLite database. Each
// batch submitted through SubmitBatch is applied inside one sql.Tx, so the
// ledger never observes a half-applied transfer.
type SQLiteStore struct {
	db     *sql.DB
	notify *notifier
	dbPath string
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
		notify: newNotifier(),
	}, nil
}

// Close closes the database connection and ends all subscriptions.
func (s *SQLiteStore) Close() error {
	s.notify.closeAll()
	return s.db.Close()
}

// submitRetry bounds how long a batch waits out WAL contention from another
// process before giving up.
var submitRetry = service.RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 50 * time.Millisecond,
	MaxDelay:     time.Second,
	Multiplier:   2.0,
}

// SubmitBatch applies every write in one atomic commit, then pushes fresh
// snapshots of the touched collections to subscribers. On error nothing is
// written, so the caller may safely resubmit the identical batch; busy and
// locked database errors are resubmitted here automatically.
func (s *SQLiteStore) SubmitBatch(ctx context.Context, userID string, writes []service.Write) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(userID, "userID"); err != nil {
		return err
	}
	if err := validateWrites(writes); err != nil {
		return err
	}

	err := common.WithRetry(ctx, func() error {
		if err := s.submitOnce(ctx, userID, writes); err != nil {
			return classifyTxError(err)
		}
		return nil
	}, submitRetry)
	if err != nil {
		return err
	}

	s.publishSnapshots(ctx, userID, touchedCollections(writes))
	return nil
}

func (s *SQLiteStore) submitOnce(ctx context.Context, userID string, writes []service.Write) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, w := range writes {
		if err := s.applyWrite(ctx, tx, userID, w); err != nil {
			return fmt.Errorf("write %d (%s %s %s): %w", i, w.Op, w.Collection, w.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// classifyTxError marks everything except lock contention as non-retryable.
// A rejected write is deterministic; retrying it would only repeat the
// rejection.
func classifyTxError(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return err
	}
	return &common.RetryableError{Err: err, Retryable: false}
}

// Subscribe registers for full-collection snapshot pushes. The subscription
// conflates under backpressure: a slow consumer always receives the latest
// snapshot next, never a partial or stale-after-newer one.
func (s *SQLiteStore) Subscribe(ctx context.Context, userID string, collection service.Collection) (<-chan service.Snapshot, func()) {
	return s.notify.subscribe(ctx, userID, collection)
}

func touchedCollections(writes []service.Write) []service.Collection {
	seen := make(map[service.Collection]bool, 3)
	var out []service.Collection
	for _, w := range writes {
		if !seen[w.Collection] {
			seen[w.Collection] = true
			out = append(out, w.Collection)
		}
	}
	return out
}
