package model

import "time"

// BoardStatus tracks the lifecycle of a board.
type BoardStatus string

const (
	// BoardActive accepts transactions and may be settled.
	BoardActive BoardStatus = "active"
	// BoardClosed is frozen by settlement; readable and exportable only.
	BoardClosed BoardStatus = "closed"
)

// Board is a named ledger holding transactions and a derived balance.
// ParentID, once set at creation, never changes; a board with a parent can
// be settled back into it. The balance is never stored on the board.
type Board struct {
	CreatedAt  time.Time
	ID         string
	Name       string
	CategoryID string
	ParentID   string // empty for top-level boards
	Status     BoardStatus
}

// HasParent reports whether the board was allocated from another board.
func (b *Board) HasParent() bool {
	return b.ParentID != ""
}
