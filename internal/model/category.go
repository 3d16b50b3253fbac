// Package model defines the record types stored in the ledger.
package model

import "time"

// Category groups boards for one user. Exactly one category per user is the
// default; it is created automatically when the user has none and it can
// never be deleted.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	IsDefault bool
}
