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

// ExtraStore manages the blocks and widgets modules offer to the page builder.
type ExtraStore struct {
	db *sql.DB
}

// NewExtraStore returns a new ExtraStore.
func NewExtraStore(db *sql.DB) *ExtraStore {
	return &ExtraStore{db: db}
}

// RegisterExtra inserts an extra, or updates the existing extra with the
// same module, type and name, and returns its id.
func (s *ExtraStore) RegisterExtra(ctx context.Context, e models.Extra) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO modules_extras (module, type, name, action, data, hidden, sequence)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (module, type, name) DO UPDATE SET
			action = EXCLUDED.action, data = EXCLUDED.data,
			hidden = EXCLUDED.hidden, sequence = EXCLUDED.sequence
		RETURNING id`,
		e.Module, string(e.Type), e.Name, nullString(e.Action), nullString(e.Data), e.Hidden, e.Sequence,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("register extra %s/%s: %w", e.Module, e.Name, err)
	}
	return id, nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
