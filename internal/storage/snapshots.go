package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Thys1a/WebAccounting/internal/common"
	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
	"github.com/shopspring/decimal"
)

// Categories returns the user's categories ordered by creation time, oldest
// first, matching the live query the UI observes.
func (s *SQLiteStore) Categories(ctx context.Context, userID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, is_default, created_at
		FROM categories
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsDefault, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user", userID, "count", len(categories))
	return categories, nil
}

// Boards returns all of the user's boards.
func (s *SQLiteStore) Boards(ctx context.Context, userID string) ([]model.Board, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category_id, parent_id, status, created_at
		FROM boards
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var boards []model.Board
	for rows.Next() {
		var b model.Board
		var status string
		if err := rows.Scan(&b.ID, &b.Name, &b.CategoryID, &b.ParentID, &status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		b.Status = model.BoardStatus(status)
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boards: %w", err)
	}

	return boards, nil
}

// Transactions returns the user's transactions ordered by date, newest
// first, matching the live query the UI observes.
func (s *SQLiteStore) Transactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, board_id, amount, description, type, date, linked_board_id
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var amount, txnType string
		if err := rows.Scan(&txn.ID, &txn.BoardID, &amount, &txn.Description, &txnType, &txn.Date, &txn.LinkedBoardID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q on transaction %s: %w", amount, txn.ID, err)
		}
		txn.Type = model.TransactionType(txnType)
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

// publishSnapshots re-reads each touched collection and pushes the result to
// subscribers. Publishing happens after commit; a failed re-read only costs
// the push, never the write.
func (s *SQLiteStore) publishSnapshots(ctx context.Context, userID string, collections []service.Collection) {
	for _, col := range collections {
		snap := service.Snapshot{Collection: col}
		var err error
		switch col {
		case service.Categories:
			snap.Categories, err = s.Categories(ctx, userID)
		case service.Boards:
			snap.Boards, err = s.Boards(ctx, userID)
		case service.Transactions:
			snap.Transactions, err = s.Transactions(ctx, userID)
		}
		if err != nil {
			common.LogError(err, "failed to build snapshot for subscribers", common.Fields{
				"collection": col,
				"user":       userID,
			})
			continue
		}
		s.notify.publish(userID, col, snap)
	}
}
