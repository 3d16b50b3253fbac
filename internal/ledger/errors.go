package ledger

import "errors"

// Invariant violations. All of these are detected against the snapshot at
// decision time and rejected before any write is attempted.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDefaultCategory     = errors.New("the default category cannot be deleted")
	ErrNoDefaultCategory   = errors.New("no default category exists")
	ErrBoardNotFound       = errors.New("board not found")
	ErrBoardClosed         = errors.New("board is closed")
	ErrParentNotFound      = errors.New("parent board not found")
	ErrParentClosed        = errors.New("parent board is closed")
	ErrNoParent            = errors.New("board has no parent to settle with")
	ErrNegativeAmount      = errors.New("allocation amount cannot be negative")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotEditable         = errors.New("transfer transactions cannot be edited or deleted individually")
	ErrEmptyName           = errors.New("name cannot be empty")
)
