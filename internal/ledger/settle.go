package ledger

import (
	"fmt"
	"time"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
	"github.com/shopspring/decimal"
)

// SettlementResult reports what a settlement did.
type SettlementResult struct {
	BoardID string
	// Balance is the child's balance immediately before settlement; the
	// parent's balance changes by exactly this much.
	Balance decimal.Decimal
}

// PlanSettlement closes a child board and reconciles its balance with its
// parent in one atomic batch. A surplus flows back as a return pair, a
// deficit is covered by the parent as a cover pair, and a zero balance
// produces no transactions; in every case the board's status flips to
// closed in the same batch, and its recomputed balance afterwards is zero.
//
// Status is checked against the snapshot given here: settling an
// already-closed board is rejected, never re-applied.
func PlanSettlement(boards []model.Board, txns []model.Transaction, boardID string, now time.Time, newID func() string) ([]service.Write, SettlementResult, error) {
	var none SettlementResult

	board := findBoard(boards, boardID)
	if board == nil {
		return nil, none, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	if board.Status == model.BoardClosed {
		return nil, none, fmt.Errorf("%w: %s", ErrBoardClosed, board.Name)
	}
	if !board.HasParent() {
		return nil, none, fmt.Errorf("%w: %s", ErrNoParent, board.Name)
	}
	parent := findBoard(boards, board.ParentID)
	if parent == nil {
		return nil, none, fmt.Errorf("%w: %s", ErrParentNotFound, board.ParentID)
	}

	balance := Balance(txns, board.ID)

	var writes []service.Write
	switch {
	case Surplus(balance):
		writes = append(writes,
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       board.ID,
				Amount:        balance.Neg(),
				Type:          model.TypeReturnOut,
				LinkedBoardID: parent.ID,
				Description:   "Surplus returned -> parent",
				Date:          now,
			}),
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       parent.ID,
				Amount:        balance,
				Type:          model.TypeReturnIn,
				LinkedBoardID: board.ID,
				Description:   fmt.Sprintf("Funds returned <- %s", board.Name),
				Date:          now,
			}),
		)
	case Deficit(balance):
		shortfall := balance.Abs()
		writes = append(writes,
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       board.ID,
				Amount:        shortfall,
				Type:          model.TypeCoverIn,
				LinkedBoardID: parent.ID,
				Description:   "Overspend covered <- parent",
				Date:          now,
			}),
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       parent.ID,
				Amount:        shortfall.Neg(),
				Type:          model.TypeCoverOut,
				LinkedBoardID: board.ID,
				Description:   fmt.Sprintf("Deficit covered -> %s", board.Name),
				Date:          now,
			}),
		)
	}

	closed := *board
	closed.Status = model.BoardClosed
	writes = append(writes, service.UpdateBoard(closed))

	return writes, SettlementResult{BoardID: board.ID, Balance: balance}, nil
}
