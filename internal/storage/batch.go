package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Thys1a/WebAccounting/internal/service"
)

func (s *SQLiteStore) applyWrite(ctx context.Context, tx *sql.Tx, userID string, w service.Write) error {
	switch w.Op {
	case service.OpCreate:
		return s.applyCreate(ctx, tx, userID, w)
	case service.OpUpdate:
		return s.applyUpdate(ctx, tx, userID, w)
	case service.OpDelete:
		return s.applyDelete(ctx, tx, userID, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, w.Op)
	}
}

func (s *SQLiteStore) applyCreate(ctx context.Context, tx *sql.Tx, userID string, w service.Write) error {
	var exists int
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = ? AND id = ?`, w.Collection),
		userID, w.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existence: %w", err)
	}
	if exists > 0 {
		return ErrRecordExists
	}

	switch w.Collection {
	case service.Categories:
		c := w.Category
		_, err = tx.ExecContext(ctx, `
			INSERT INTO categories (user_id, id, name, is_default, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			userID, c.ID, c.Name, c.IsDefault, c.CreatedAt)
	case service.Boards:
		b := w.Board
		_, err = tx.ExecContext(ctx, `
			INSERT INTO boards (user_id, id, name, category_id, parent_id, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, b.ID, b.Name, b.CategoryID, b.ParentID, string(b.Status), b.CreatedAt)
	case service.Transactions:
		t := w.Transaction
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (user_id, id, board_id, amount, description, type, date, linked_board_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, t.ID, t.BoardID, t.Amount.String(), t.Description, string(t.Type), t.Date, t.LinkedBoardID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) applyUpdate(ctx context.Context, tx *sql.Tx, userID string, w service.Write) error {
	var res sql.Result
	var err error

	switch w.Collection {
	case service.Categories:
		c := w.Category
		res, err = tx.ExecContext(ctx, `
			UPDATE categories SET name = ?, is_default = ?, created_at = ?
			WHERE user_id = ? AND id = ?`,
			c.Name, c.IsDefault, c.CreatedAt, userID, c.ID)
	case service.Boards:
		b := w.Board
		res, err = tx.ExecContext(ctx, `
			UPDATE boards SET name = ?, category_id = ?, parent_id = ?, status = ?, created_at = ?
			WHERE user_id = ? AND id = ?`,
			b.Name, b.CategoryID, b.ParentID, string(b.Status), b.CreatedAt, userID, b.ID)
	case service.Transactions:
		t := w.Transaction
		res, err = tx.ExecContext(ctx, `
			UPDATE transactions SET board_id = ?, amount = ?, description = ?, type = ?, date = ?, linked_board_id = ?
			WHERE user_id = ? AND id = ?`,
			t.BoardID, t.Amount.String(), t.Description, string(t.Type), t.Date, t.LinkedBoardID, userID, t.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	return requireOneRow(res)
}

func (s *SQLiteStore) applyDelete(ctx context.Context, tx *sql.Tx, userID string, w service.Write) error {
	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = ? AND id = ?`, w.Collection),
		userID, w.ID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
