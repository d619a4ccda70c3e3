// Package store provides database access methods for the host CMS and the
// events module. Each store struct wraps a *sql.DB and exposes typed query
// methods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNoDefaultUser is returned when no administrator exists to own
// installer-created content.
var ErrNoDefaultUser = errors.New("no default user: seed the database first")

// UserStore handles user lookups needed by module installers.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// DefaultUserID returns the oldest super-admin, falling back to the oldest user.
func (s *UserStore) DefaultUserID(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM users ORDER BY is_god DESC, id ASC LIMIT 1`,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNoDefaultUser
	}
	if err != nil {
		return 0, fmt.Errorf("default user: %w", err)
	}
	return id, nil
}
