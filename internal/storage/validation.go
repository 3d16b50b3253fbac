// Package storage provides the SQLite-backed atomic-batch document store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Thys1a/WebAccounting/internal/service"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrEmptyBatch        = errors.New("batch cannot be empty")
	ErrInvalidWrite      = errors.New("invalid write")
	ErrRecordNotFound    = errors.New("record not found")
	ErrRecordExists      = errors.New("record already exists")
	ErrUnknownOp         = errors.New("unknown write op")
	ErrUnknownCollection = errors.New("unknown collection")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateWrites validates a batch before any of it touches the database.
func validateWrites(writes []service.Write) error {
	if len(writes) == 0 {
		return ErrEmptyBatch
	}
	for i, w := range writes {
		if err := validateWrite(w); err != nil {
			return fmt.Errorf("write at index %d: %w", i, err)
		}
	}
	return nil
}

func validateWrite(w service.Write) error {
	switch w.Collection {
	case service.Categories, service.Boards, service.Transactions:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, w.Collection)
	}

	switch w.Op {
	case service.OpCreate, service.OpUpdate, service.OpDelete:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, w.Op)
	}

	if w.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidWrite)
	}

	if w.Op == service.OpDelete {
		return nil
	}

	switch w.Collection {
	case service.Categories:
		if w.Category == nil {
			return fmt.Errorf("%w: missing category payload", ErrInvalidWrite)
		}
		if w.Category.ID != w.ID {
			return fmt.Errorf("%w: payload id %q does not match write id %q", ErrInvalidWrite, w.Category.ID, w.ID)
		}
		if w.Category.Name == "" {
			return fmt.Errorf("%w: category name is empty", ErrInvalidWrite)
		}
	case service.Boards:
		if w.Board == nil {
			return fmt.Errorf("%w: missing board payload", ErrInvalidWrite)
		}
		if w.Board.ID != w.ID {
			return fmt.Errorf("%w: payload id %q does not match write id %q", ErrInvalidWrite, w.Board.ID, w.ID)
		}
		if w.Board.Name == "" {
			return fmt.Errorf("%w: board name is empty", ErrInvalidWrite)
		}
		if w.Board.CategoryID == "" {
			return fmt.Errorf("%w: board category id is empty", ErrInvalidWrite)
		}
		if w.Board.ParentID == w.Board.ID {
			return fmt.Errorf("%w: board cannot be its own parent", ErrInvalidWrite)
		}
	case service.Transactions:
		if w.Transaction == nil {
			return fmt.Errorf("%w: missing transaction payload", ErrInvalidWrite)
		}
		if w.Transaction.ID != w.ID {
			return fmt.Errorf("%w: payload id %q does not match write id %q", ErrInvalidWrite, w.Transaction.ID, w.ID)
		}
		if w.Transaction.BoardID == "" {
			return fmt.Errorf("%w: transaction board id is empty", ErrInvalidWrite)
		}
		if !w.Transaction.Type.Valid() {
			return fmt.Errorf("%w: transaction type %q", ErrInvalidWrite, w.Transaction.Type)
		}
		if w.Transaction.Date.IsZero() {
			return fmt.Errorf("%w: transaction date is zero", ErrInvalidWrite)
		}
	}
	return nil
}
