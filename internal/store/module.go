// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// rightsLevelFull is the action level granting view, edit and delete.
const rightsLevelFull = 7

// ModuleStore manages the module registry: installed modules, group
// rights and search registration. Every write is idempotent.
type ModuleStore struct {
	db *sql.DB
}

// NewModuleStore returns a new ModuleStore.
func NewModuleStore(db *sql.DB) *ModuleStore {
	return &ModuleStore{db: db}
}

// RegisterModule records a module as installed, refreshing its description.
func (s *ModuleStore) RegisterModule(ctx context.Context, name, description string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO modules (name, description) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`,
		name, description,
	)
	if err != nil {
		return fmt.Errorf("register module %s: %w", name, err)
	}
	return nil
}

// GrantModuleRights gives a group access to a module.
func (s *ModuleStore) GrantModuleRights(ctx context.Context, groupID int, module string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups_rights_modules (group_id, module) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		groupID, module,
	)
	if err != nil {
		return fmt.Errorf("grant module rights %s to group %d: %w", module, groupID, err)
	}
	return nil
}

// GrantActionRights gives a group full rights on one module action.
func (s *ModuleStore) GrantActionRights(ctx context.Context, groupID int, module, action string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO groups_rights_actions (group_id, module, action, level) VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`,
		groupID, module, action, rightsLevelFull,
	)
	if err != nil {
		return fmt.Errorf("grant action rights %s/%s to group %d: %w", module, action, groupID, err)
	}
	return nil
}

// MarkSearchable registers a module with the site-wide search.
func (s *ModuleStore) MarkSearchable(ctx context.Context, module string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_modules (module, searchable, weight) VALUES ($1, TRUE, 1)
		ON CONFLICT (module) DO UPDATE SET searchable = TRUE`,
		module,
	)
	if err != nil {
		return fmt.Errorf("mark module %s searchable: %w", module, err)
	}
	return nil
}

// Actions returns the actions a group may perform on a module, sorted.
func (s *ModuleStore) Actions(ctx context.Context, groupID int, module string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action FROM groups_rights_actions
		WHERE group_id = $1 AND module = $2
		ORDER BY action`, groupID, module)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var actions []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
