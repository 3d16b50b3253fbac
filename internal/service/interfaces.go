// Package service defines the contracts between the ledger core and its
// collaborators, chiefly the atomic-batch document store.
package service

import (
	"context"
	"time"

	"github.com/Thys1a/WebAccounting/internal/model"
)

// Collection identifies one of the per-user record collections.
type Collection string

const (
	// Categories holds model.Category records.
	Categories Collection = "categories"
	// Boards holds model.Board records.
	Boards Collection = "boards"
	// Transactions holds model.Transaction records.
	Transactions Collection = "transactions"
)

// WriteOp is the kind of mutation a Write requests.
type WriteOp string

const (
	// OpCreate inserts a new record; it fails if the id already exists.
	OpCreate WriteOp = "create"
	// OpUpdate replaces an existing record; it fails if the id is missing.
	OpUpdate WriteOp = "update"
	// OpDelete removes an existing record; it fails if the id is missing.
	OpDelete WriteOp = "delete"
)

// Write is one element of an atomic batch. Exactly one payload field is set
// for create/update, matching Collection; deletes carry only the ID.
type Write struct {
	Category    *model.Category
	Board       *model.Board
	Transaction *model.Transaction
	Collection  Collection
	Op          WriteOp
	ID          string
}

// CreateCategory builds a create write for a category record.
func CreateCategory(c model.Category) Write {
	return Write{Collection: Categories, Op: OpCreate, ID: c.ID, Category: &c}
}

// DeleteCategory builds a delete write for a category record.
func DeleteCategory(id string) Write {
	return Write{Collection: Categories, Op: OpDelete, ID: id}
}

// CreateBoard builds a create write for a board record.
func CreateBoard(b model.Board) Write {
	return Write{Collection: Boards, Op: OpCreate, ID: b.ID, Board: &b}
}

// UpdateBoard builds an update write replacing a board record.
func UpdateBoard(b model.Board) Write {
	return Write{Collection: Boards, Op: OpUpdate, ID: b.ID, Board: &b}
}

// DeleteBoard builds a delete write for a board record.
func DeleteBoard(id string) Write {
	return Write{Collection: Boards, Op: OpDelete, ID: id}
}

// CreateTransaction builds a create write for a transaction record.
func CreateTransaction(t model.Transaction) Write {
	return Write{Collection: Transactions, Op: OpCreate, ID: t.ID, Transaction: &t}
}

// UpdateTransaction builds an update write replacing a transaction record.
func UpdateTransaction(t model.Transaction) Write {
	return Write{Collection: Transactions, Op: OpUpdate, ID: t.ID, Transaction: &t}
}

// DeleteTransaction builds a delete write for a transaction record.
func DeleteTransaction(id string) Write {
	return Write{Collection: Transactions, Op: OpDelete, ID: id}
}

// Snapshot is a full, ordered view of one collection for one user, pushed to
// subscribers after every committed batch that touched the collection.
// Exactly one of the record slices is populated, matching Collection.
// Seq increases with each snapshot delivered on a subscription; slow
// consumers may observe gaps but never a partially applied batch.
type Snapshot struct {
	Categories   []model.Category
	Boards       []model.Board
	Transactions []model.Transaction
	Collection   Collection
	Seq          uint64
}

// Store is the persistence contract the ledger core consumes. Writes are
// submitted as all-or-nothing batches; reads are full-collection snapshots,
// either pulled synchronously or pushed over a subscription. Orderings match
// the live queries the UI observes: categories by creation time ascending,
// transactions by date descending, boards unordered.
type Store interface {
	// SubmitBatch applies every write in one atomic commit. On error the
	// ledger state is guaranteed unchanged, so retrying is safe.
	SubmitBatch(ctx context.Context, userID string, writes []Write) error

	Categories(ctx context.Context, userID string) ([]model.Category, error)
	Boards(ctx context.Context, userID string) ([]model.Board, error)
	Transactions(ctx context.Context, userID string) ([]model.Transaction, error)

	// Subscribe registers for snapshot pushes on one collection. The
	// returned cancel func releases the subscription; the channel is closed
	// when the subscription ends.
	Subscribe(ctx context.Context, userID string, collection Collection) (<-chan Snapshot, func())

	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for store submissions. The ledger
// core never retries on its own; the store applies a policy to lock
// contention, where resubmitting an unchanged batch is always safe.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
