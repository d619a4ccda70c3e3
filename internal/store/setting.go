// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"eventscms/internal/models"
)

// SettingStore manages module settings in the database. Values are stored
// JSON encoded so that booleans and integers keep their type.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore returns a new SettingStore backed by the given database.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get decodes the stored value of key into dst. It reports false, and
// leaves dst untouched, if the setting does not exist.
func (s *SettingStore) Get(ctx context.Context, key models.SettingKey, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM modules_settings
		WHERE module = $1 AND name = $2 AND language = $3`,
		key.Module, key.Name, key.Language,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get setting %s.%s: %w", key.Module, key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode setting %s.%s: %w", key.Module, key, err)
	}
	return true, nil
}

// Set upserts a setting, replacing any existing value.
func (s *SettingStore) Set(ctx context.Context, key models.SettingKey, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s.%s: %w", key.Module, key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO modules_settings (module, name, language, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (module, name, language)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key.Module, key.Name, key.Language, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set setting %s.%s: %w", key.Module, key, err)
	}
	return nil
}

// SetDefault stores a setting only if it does not exist yet.
func (s *SettingStore) SetDefault(ctx context.Context, key models.SettingKey, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s.%s: %w", key.Module, key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO modules_settings (module, name, language, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (module, name, language) DO NOTHING`,
		key.Module, key.Name, key.Language, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("set default setting %s.%s: %w", key.Module, key, err)
	}
	return nil
}
