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

// LocaleStore manages translated interface strings.
type LocaleStore struct {
	db *sql.DB
}

// NewLocaleStore returns a new LocaleStore.
func NewLocaleStore(db *sql.DB) *LocaleStore {
	return &LocaleStore{db: db}
}

// InsertLocale adds a translation. An existing translation with the same
// language, application, module, type and name is left untouched, so
// values edited by translators survive a reinstall; inserted reports
// whether a row was written.
func (s *LocaleStore) InsertLocale(ctx context.Context, l models.LocaleString) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO locale (language, application, module, type, name, value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (language, application, module, type, name) DO NOTHING`,
		l.Language, l.Application, l.Module, string(l.Type), l.Name, l.Value,
	)
	if err != nil {
		return false, fmt.Errorf("insert locale %s/%s/%s/%s: %w", l.Language, l.Application, l.Type, l.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert locale rows affected: %w", err)
	}
	return n > 0, nil
}
