// Package ledger implements the allocation and settlement engine: the rules
// that keep board balances consistent as money moves between linked boards,
// expressed as pure batch planners plus a store-backed façade.
package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Thys1a/WebAccounting/internal/interchange"
	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
)

// Ledger binds the batch planners to a store for one user. Every mutating
// operation reads the current snapshots, plans exactly one atomic batch and
// submits it; there is no in-process locking because atomicity is the
// store's job. Reads between planning and commit can race with other
// writers; each batch is still all-or-nothing.
type Ledger struct {
	store  service.Store
	newID  func() string
	now    func() time.Time
	userID string
}

// Config holds the injectable sources the ledger uses when minting records.
type Config struct {
	NewID func() string
	Now   func() time.Time
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		NewID: uuid.NewString,
		Now:   time.Now,
	}
}

// New creates a ledger for one user on the given store.
func New(store service.Store, userID string) *Ledger {
	return NewWithConfig(store, userID, DefaultConfig())
}

// NewWithConfig creates a ledger with custom id and clock sources.
func NewWithConfig(store service.Store, userID string, cfg Config) *Ledger {
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Ledger{
		store:  store,
		userID: userID,
		newID:  cfg.NewID,
		now:    cfg.Now,
	}
}

// EnsureDefaultCategory runs the default-category reconciliation against the
// current snapshot, creating the bootstrap category when the user has none.
// It returns the created category, or nil when the invariant already held.
func (l *Ledger) EnsureDefaultCategory(ctx context.Context) (*model.Category, error) {
	categories, err := l.store.Categories(ctx, l.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	writes, created := PlanEnsureDefault(categories, l.now(), l.newID)
	if len(writes) == 0 {
		return nil, nil
	}

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return nil, fmt.Errorf("failed to create default category: %w", err)
	}

	slog.Info("created default category", "user", l.userID, "category", created.ID)
	return created, nil
}

// AddCategory creates a new non-default category.
func (l *Ledger) AddCategory(ctx context.Context, name string) (model.Category, error) {
	writes, cat, err := PlanAddCategory(name, l.now(), l.newID)
	if err != nil {
		return model.Category{}, err
	}
	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

// DeleteCategory deletes a category, atomically moving its boards to the
// default category. The default category itself is never deletable.
func (l *Ledger) DeleteCategory(ctx context.Context, categoryID string) error {
	categories, err := l.store.Categories(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}

	writes, err := PlanDeleteCategory(categories, boards, categoryID)
	if err != nil {
		return err
	}

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	slog.Info("deleted category",
		"user", l.userID,
		"category", categoryID,
		"boards_moved", len(writes)-1)
	return nil
}

// CreateBoard creates a board, funding it from a parent when the request
// carries a parent and a positive amount. Board plus both transfer legs
// commit in one batch or not at all.
func (l *Ledger) CreateBoard(ctx context.Context, req AllocationRequest) (model.Board, error) {
	categories, err := l.store.Categories(ctx, l.userID)
	if err != nil {
		return model.Board{}, fmt.Errorf("failed to load categories: %w", err)
	}
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return model.Board{}, fmt.Errorf("failed to load boards: %w", err)
	}

	writes, board, err := PlanAllocation(categories, boards, req, l.now(), l.newID)
	if err != nil {
		return model.Board{}, err
	}

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return model.Board{}, fmt.Errorf("failed to create board: %w", err)
	}

	slog.Info("created board",
		"user", l.userID,
		"board", board.ID,
		"parent", board.ParentID,
		"funded", len(writes) > 1)
	return board, nil
}

// SettleBoard closes a child board, reconciling its balance with its parent
// in the same batch. The balance is computed from the snapshot at decision
// time; a transaction racing in after that snapshot is an accepted risk of
// the read path, the write itself is still atomic.
func (l *Ledger) SettleBoard(ctx context.Context, boardID string) (SettlementResult, error) {
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("failed to load boards: %w", err)
	}
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	writes, result, err := PlanSettlement(boards, txns, boardID, l.now(), l.newID)
	if err != nil {
		return SettlementResult{}, err
	}

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return SettlementResult{}, fmt.Errorf("failed to settle board: %w", err)
	}

	slog.Info("settled board",
		"user", l.userID,
		"board", boardID,
		"balance", result.Balance.String())
	return result, nil
}

// DeleteBoard removes a board and every transaction on it in one batch.
// Transfer legs recorded on other boards remain; they are those boards'
// history.
func (l *Ledger) DeleteBoard(ctx context.Context, boardID string) error {
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}
	if findBoard(boards, boardID) == nil {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	var writes []service.Write
	for _, t := range txns {
		if t.BoardID == boardID {
			writes = append(writes, service.DeleteTransaction(t.ID))
		}
	}
	writes = append(writes, service.DeleteBoard(boardID))

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	slog.Info("deleted board",
		"user", l.userID,
		"board", boardID,
		"transactions_removed", len(writes)-1)
	return nil
}

// AddTransaction records a normal entry on an active board. Amount carries
// its sign: negative for expenses, positive for income.
func (l *Ledger) AddTransaction(ctx context.Context, boardID string, amount decimal.Decimal, description string) (model.Transaction, error) {
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to load boards: %w", err)
	}
	board := findBoard(boards, boardID)
	if board == nil {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	if board.Status == model.BoardClosed {
		return model.Transaction{}, fmt.Errorf("%w: %s", ErrBoardClosed, board.Name)
	}

	txn := model.Transaction{
		ID:          l.newID(),
		BoardID:     boardID,
		Amount:      amount,
		Description: description,
		Type:        model.TypeNormal,
		Date:        l.now(),
	}

	if err := l.store.SubmitBatch(ctx, l.userID, []service.Write{service.CreateTransaction(txn)}); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to add transaction: %w", err)
	}
	return txn, nil
}

// EditTransaction rewrites the amount and description of a normal entry.
// Transfer legs are immutable: they only ever change as part of an
// allocation or settlement batch.
func (l *Ledger) EditTransaction(ctx context.Context, transactionID string, amount decimal.Decimal, description string) error {
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	txn := findTransaction(txns, transactionID)
	if txn == nil {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	if txn.Type.IsTransfer() {
		return fmt.Errorf("%w: %s", ErrNotEditable, transactionID)
	}

	updated := *txn
	updated.Amount = amount
	updated.Description = description

	if err := l.store.SubmitBatch(ctx, l.userID, []service.Write{service.UpdateTransaction(updated)}); err != nil {
		return fmt.Errorf("failed to edit transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a normal entry. Transfer legs cannot be deleted
// individually.
func (l *Ledger) DeleteTransaction(ctx context.Context, transactionID string) error {
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	txn := findTransaction(txns, transactionID)
	if txn == nil {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, transactionID)
	}
	if txn.Type.IsTransfer() {
		return fmt.Errorf("%w: %s", ErrNotEditable, transactionID)
	}

	if err := l.store.SubmitBatch(ctx, l.userID, []service.Write{service.DeleteTransaction(transactionID)}); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// BoardBalance recomputes a board's balance from the current transaction
// snapshot.
func (l *Ledger) BoardBalance(ctx context.Context, boardID string) (decimal.Decimal, error) {
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load boards: %w", err)
	}
	if findBoard(boards, boardID) == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load transactions: %w", err)
	}
	return Balance(txns, boardID), nil
}

// Export writes a board and its transactions in the interchange format.
// Closed boards stay exportable.
func (l *Ledger) Export(ctx context.Context, boardID string, w io.Writer) error {
	boards, err := l.store.Boards(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load boards: %w", err)
	}
	board := findBoard(boards, boardID)
	if board == nil {
		return fmt.Errorf("%w: %s", ErrBoardNotFound, boardID)
	}
	txns, err := l.store.Transactions(ctx, l.userID)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	return interchange.Export(*board, txns, w)
}

// ImportResult reports what an import created.
type ImportResult struct {
	Board    model.Board
	Imported int
	Skipped  int
}

// Import reads an interchange document and appends a new parentless, active
// board with its parsed transactions as one atomic batch. Existing boards
// and transactions are never touched; rows with non-numeric amounts are
// dropped silently per the lenient import policy.
func (l *Ledger) Import(ctx context.Context, r io.Reader, categoryID string) (ImportResult, error) {
	categories, err := l.store.Categories(ctx, l.userID)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load categories: %w", err)
	}
	if findCategory(categories, categoryID) == nil {
		return ImportResult{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}

	f, err := interchange.Parse(r, l.now())
	if err != nil {
		return ImportResult{}, err
	}

	board := model.Board{
		ID:         l.newID(),
		Name:       f.BoardName,
		CategoryID: categoryID,
		Status:     model.BoardActive,
		CreatedAt:  l.now(),
	}

	writes := make([]service.Write, 0, len(f.Rows)+1)
	writes = append(writes, service.CreateBoard(board))
	for _, row := range f.Rows {
		writes = append(writes, service.CreateTransaction(model.Transaction{
			ID:          l.newID(),
			BoardID:     board.ID,
			Amount:      row.Amount,
			Description: row.Description,
			Type:        row.Type,
			Date:        row.Date,
		}))
	}

	if err := l.store.SubmitBatch(ctx, l.userID, writes); err != nil {
		return ImportResult{}, fmt.Errorf("failed to import board: %w", err)
	}

	slog.Info("imported board",
		"user", l.userID,
		"board", board.ID,
		"rows", len(f.Rows),
		"skipped", f.Skipped)
	return ImportResult{Board: board, Imported: len(f.Rows), Skipped: f.Skipped}, nil
}
