package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
	"github.com/shopspring/decimal"
)

// AllocationRequest describes a new board, optionally funded from a parent.
type AllocationRequest struct {
	Name       string
	CategoryID string
	ParentID   string
	Amount     decimal.Decimal
}

// PlanAllocation turns an allocation intent into one atomic write batch:
// the new board, and, when a parent and a positive amount are given, the
// transfer pair debiting the parent and crediting the child. The pair's
// amounts are additive inverses and each leg names the other board, so the
// ledger either sees the whole transfer or none of it.
func PlanAllocation(categories []model.Category, boards []model.Board, req AllocationRequest, now time.Time, newID func() string) ([]service.Write, model.Board, error) {
	var none model.Board

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, none, ErrEmptyName
	}
	if req.Amount.IsNegative() {
		return nil, none, ErrNegativeAmount
	}
	if findCategory(categories, req.CategoryID) == nil {
		return nil, none, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.CategoryID)
	}

	var parent *model.Board
	if req.ParentID != "" {
		parent = findBoard(boards, req.ParentID)
		if parent == nil {
			return nil, none, fmt.Errorf("%w: %s", ErrParentNotFound, req.ParentID)
		}
		if parent.Status == model.BoardClosed {
			return nil, none, fmt.Errorf("%w: %s", ErrParentClosed, parent.Name)
		}
	}

	board := model.Board{
		ID:         newID(),
		Name:       name,
		CategoryID: req.CategoryID,
		ParentID:   req.ParentID,
		Status:     model.BoardActive,
		CreatedAt:  now,
	}

	writes := []service.Write{service.CreateBoard(board)}

	if parent != nil && req.Amount.IsPositive() {
		writes = append(writes,
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       parent.ID,
				Amount:        req.Amount.Neg(),
				Type:          model.TypeAllocationOut,
				LinkedBoardID: board.ID,
				Description:   fmt.Sprintf("Allocation -> %s", board.Name),
				Date:          now,
			}),
			service.CreateTransaction(model.Transaction{
				ID:            newID(),
				BoardID:       board.ID,
				Amount:        req.Amount,
				Type:          model.TypeAllocationIn,
				LinkedBoardID: parent.ID,
				Description:   "Initial funding <- parent",
				Date:          now,
			}),
		)
	}

	return writes, board, nil
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

func findBoard(boards []model.Board, id string) *model.Board {
	for i := range boards {
		if boards[i].ID == id {
			return &boards[i]
		}
	}
	return nil
}

func findTransaction(txns []model.Transaction, id string) *model.Transaction {
	for i := range txns {
		if txns[i].ID == id {
			return &txns[i]
		}
	}
	return nil
}
