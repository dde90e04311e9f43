package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConflict is returned on uniqueness violations (duplicate favorite pair,
// duplicate category name/slug). Absent rows are never an error at this
// layer: reads and updates on a missing id return (nil, nil) and the caller
// decides what not-found means.
var ErrConflict = errors.New("store: conflict")

// Store is the single seam through which every read and mutation passes.
// It enforces data invariants (uniqueness, derived counters, defaults) and
// trusts its callers to have done all authorization. Every user-scoped
// operation takes the caller's identity as an explicit argument.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
