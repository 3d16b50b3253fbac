package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/Thys1a/WebAccounting/internal/config"
	"github.com/Thys1a/WebAccounting/internal/ledger"
	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/storage"
)

// openLedger opens the store, migrates it, and returns a ledger bound to the
// configured user. The default-category reconciliation runs on every
// invocation; it is idempotent against an already-populated snapshot.
func openLedger(ctx context.Context) (*ledger.Ledger, *storage.SQLiteStore, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if dbPath == "" {
		var err error
		dbPath, err = config.DefaultDatabasePath()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate ledger database: %w", err)
	}

	led := ledger.New(store, viper.GetString("user"))
	if _, err := led.EnsureDefaultCategory(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return led, store, nil
}

// defaultCategoryID returns the id of the user's default category.
func defaultCategoryID(ctx context.Context, store *storage.SQLiteStore) (string, error) {
	categories, err := store.Categories(ctx, viper.GetString("user"))
	if err != nil {
		return "", fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		if c.IsDefault {
			return c.ID, nil
		}
	}
	return "", ledger.ErrNoDefaultCategory
}

// boardByName resolves a board argument: exact id first, then unique name.
func boardByName(boards []model.Board, arg string) (*model.Board, error) {
	for i := range boards {
		if boards[i].ID == arg {
			return &boards[i], nil
		}
	}
	var match *model.Board
	for i := range boards {
		if boards[i].Name == arg {
			if match != nil {
				return nil, fmt.Errorf("board name %q is ambiguous, use its id", arg)
			}
			match = &boards[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ledger.ErrBoardNotFound, arg)
	}
	return match, nil
}

// categoryByName resolves a category argument: exact id first, then unique name.
func categoryByName(categories []model.Category, arg string) (*model.Category, error) {
	for i := range categories {
		if categories[i].ID == arg {
			return &categories[i], nil
		}
	}
	var match *model.Category
	for i := range categories {
		if categories[i].Name == arg {
			if match != nil {
				return nil, fmt.Errorf("category name %q is ambiguous, use its id", arg)
			}
			match = &categories[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ledger.ErrCategoryNotFound, arg)
	}
	return match, nil
}
