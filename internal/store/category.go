// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"eventscms/internal/models"
)

// CategoryStore manages event categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// FirstCategory returns the id of the oldest category in a language.
func (s *CategoryStore) FirstCategory(ctx context.Context, language string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM events_categories WHERE language = $1
		ORDER BY id LIMIT 1`, language,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("first category: %w", err)
	}
	return id, true, nil
}

// CategoryExists reports whether the category exists within the language.
func (s *CategoryStore) CategoryExists(ctx context.Context, language string, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM events_categories WHERE id = $1 AND language = $2)`,
		id, language,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists: %w", err)
	}
	return exists, nil
}

// CreateCategory inserts a category and returns its id.
func (s *CategoryStore) CreateCategory(ctx context.Context, c models.Category) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events_categories (language, name, url)
		VALUES ($1, $2, $3) RETURNING id`,
		c.Language, c.Name, c.URL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return id, nil
}
