// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// install_log.go records module installation runs in the database for
// audit and debugging purposes. Each entry captures which module was
// installed, for which languages, and what the run changed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InstallLogStore handles module installation log operations.
type InstallLogStore struct {
	db *sql.DB
}

// NewInstallLogStore creates a new InstallLogStore.
func NewInstallLogStore(db *sql.DB) *InstallLogStore {
	return &InstallLogStore{db: db}
}

// InstallLogEntry represents a single installation run.
type InstallLogEntry struct {
	ID          int64
	RunID       uuid.UUID
	Module      string
	Languages   []string
	ExampleData bool
	Summary     map[string]int
	InstalledAt time.Time
}

// Log records an installation run. Failures are logged, not returned:
// the journal is best-effort and must not fail an install that succeeded.
func (s *InstallLogStore) Log(ctx context.Context, e InstallLogEntry) {
	summary, err := json.Marshal(e.Summary)
	if err != nil {
		summary = []byte("{}")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO module_install_log (run_id, module, languages, example_data, summary)
		VALUES ($1, $2, $3, $4, $5)
	`, e.RunID, e.Module, strings.Join(e.Languages, ","), e.ExampleData, string(summary))
	if err != nil {
		slog.Warn("failed to log module install",
			"run_id", e.RunID,
			"module", e.Module,
			"error", err,
		)
		return
	}
	slog.Debug("module install logged", "run_id", e.RunID, "module", e.Module)
}

// RecentEntries returns the most recent installation runs of a module,
// limited to the specified count.
func (s *InstallLogStore) RecentEntries(ctx context.Context, module string, limit int) ([]InstallLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, module, languages, example_data, summary, installed_at
		FROM module_install_log
		WHERE module = $1
		ORDER BY installed_at DESC, id DESC
		LIMIT $2
	`, module, limit)
	if err != nil {
		return nil, fmt.Errorf("query install log: %w", err)
	}
	defer rows.Close()

	var entries []InstallLogEntry
	for rows.Next() {
		var e InstallLogEntry
		var langs, summary string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Module, &langs, &e.ExampleData, &summary, &e.InstalledAt); err != nil {
			return nil, fmt.Errorf("scan install log: %w", err)
		}
		if langs != "" {
			e.Languages = strings.Split(langs, ",")
		}
		if err := json.Unmarshal([]byte(summary), &e.Summary); err != nil {
			return nil, fmt.Errorf("decode install summary: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
