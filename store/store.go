// Package store is the persistence layer: every collection read/write and
// the set-based aggregate queries the feed core composes over. All methods
// return typed client-facing errors from the model package where the failure
// is user-visible, and wrapped store errors otherwise.
package store

import (
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that build their own scoped
// queries (the feed composer's candidate scopes).
func (s *Store) DB() *gorm.DB {
	return s.db
}
