package repository

import "errors"

var (
	// ErrNotFound is returned (wrapped) when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned (wrapped) when a versioned write lost a race.
	ErrConflict = errors.New("version conflict")
)
