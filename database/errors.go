package database

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate document")
	// ErrInvalidID is returned for identifiers that cannot name a document.
	ErrInvalidID = errors.New("invalid document id")
)
