package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					user_id TEXT NOT NULL,
					id TEXT NOT NULL,
					name TEXT NOT NULL,
					is_default INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL,
					PRIMARY KEY (user_id, id)
				)`,

				`CREATE TABLE IF NOT EXISTS boards (
					user_id TEXT NOT NULL,
					id TEXT NOT NULL,
					name TEXT NOT NULL,
					category_id TEXT NOT NULL,
					parent_id TEXT NOT NULL DEFAULT '',
					status TEXT NOT NULL,
					created_at DATETIME NOT NULL,
					PRIMARY KEY (user_id, id)
				)`,
				`CREATE INDEX idx_boards_category ON boards(user_id, category_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					user_id TEXT NOT NULL,
					id TEXT NOT NULL,
					board_id TEXT NOT NULL,
					amount TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					type TEXT NOT NULL,
					date DATETIME NOT NULL,
					linked_board_id TEXT NOT NULL DEFAULT '',
					PRIMARY KEY (user_id, id)
				)`,
				`CREATE INDEX idx_transactions_board ON transactions(user_id, board_id)`,
				`CREATE INDEX idx_transactions_date ON transactions(user_id, date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index transfer pairs by linked board",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX idx_transactions_linked ON transactions(user_id, linked_board_id)`)
			if err != nil {
				return fmt.Errorf("failed to create linked board index: %w", err)
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if currentVersion >= ExpectedSchemaVersion {
		slog.Debug("schema up to date", "version", currentVersion)
		return nil
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		slog.Info("applying migration",
			"version", m.Version,
			"description", m.Description)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}

		// PRAGMA cannot be parameterized
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
