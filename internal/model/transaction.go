package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of ledger entry kinds. Normal entries
// are user-editable; the six transfer kinds only ever appear as halves of an
// allocation or settlement pair and are never edited individually.
type TransactionType string

const (
	// TypeNormal is an ordinary income or expense entry.
	TypeNormal TransactionType = "normal"
	// TypeAllocationOut debits a parent board when funding a new child.
	TypeAllocationOut TransactionType = "allocation_out"
	// TypeAllocationIn credits a child board with its initial funding.
	TypeAllocationIn TransactionType = "allocation_in"
	// TypeReturnOut debits a settled child returning its surplus.
	TypeReturnOut TransactionType = "return_out"
	// TypeReturnIn credits a parent receiving a settled child's surplus.
	TypeReturnIn TransactionType = "return_in"
	// TypeCoverOut debits a parent covering a settled child's deficit.
	TypeCoverOut TransactionType = "cover_out"
	// TypeCoverIn credits a settled child whose deficit was covered.
	TypeCoverIn TransactionType = "cover_in"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeNormal, TypeAllocationOut, TypeAllocationIn,
		TypeReturnOut, TypeReturnIn, TypeCoverOut, TypeCoverIn:
		return true
	}
	return false
}

// IsTransfer reports whether t is one half of a transfer pair.
func (t TransactionType) IsTransfer() bool {
	return t.Valid() && t != TypeNormal
}

// Transaction is a single ledger entry on a board. Amount is signed:
// negative for money leaving the board, positive for money entering it.
// LinkedBoardID names the counterpart board of a transfer pair and is empty
// on normal entries.
type Transaction struct {
	Date          time.Time
	ID            string
	BoardID       string
	Description   string
	Type          TransactionType
	LinkedBoardID string
	Amount        decimal.Decimal
}
