package ledger

import (
	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/shopspring/decimal"
)

// Balance folds a board's balance out of the full transaction snapshot. It
// is a pure, order-independent sum; no stored aggregate is ever trusted.
func Balance(txns []model.Transaction, boardID string) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if t.BoardID == boardID {
			sum = sum.Add(t.Amount)
		}
	}
	return sum
}

// Surplus reports whether a balance is positive.
func Surplus(balance decimal.Decimal) bool {
	return balance.IsPositive()
}

// Deficit reports whether a balance is negative.
func Deficit(balance decimal.Decimal) bool {
	return balance.IsNegative()
}

// Settled reports whether a balance is exactly zero.
func Settled(balance decimal.Decimal) bool {
	return balance.IsZero()
}
