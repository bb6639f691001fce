package quotes

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no record exists for the given id.
	ErrNotFound = errors.New("quote not found")
	// ErrDuplicateID indicates an append with an id already in the store.
	ErrDuplicateID = errors.New("duplicate quote id")
)

// Store owns the canonical copy of every quote record. Any in-memory copy
// held by a caller is a read-only snapshot that must be re-fetched to
// observe updates made elsewhere.
//
// Append and UpdateStatus on the file-backed implementation rewrite the
// whole backing document; concurrent writers from separate processes can
// lose updates. Single-process access is serialised internally.
type Store interface {
	// Append adds a new record. The id must be unique; a duplicate is
	// rejected with ErrDuplicateID.
	Append(ctx context.Context, rec Record) error
	// List returns all records in storage insertion order.
	List(ctx context.Context) ([]Record, error)
	// FindByID returns the record with the given id or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Record, error)
	// UpdateStatus mutates only the status field of an existing record
	// and returns the updated record. This is the only mutation exposed
	// on a stored record.
	UpdateStatus(ctx context.Context, id string, status Status) (*Record, error)
}
