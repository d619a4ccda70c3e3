// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"eventscms/internal/models"
	"eventscms/internal/slug"
)

// PageStore creates site pages on behalf of module installers.
type PageStore struct {
	db *sql.DB
}

// NewPageStore returns a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

// PageExistsForExtra reports whether an active page in the given language
// has a block linked to the extra.
func (s *PageStore) PageExistsForExtra(ctx context.Context, extraID int64, language string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(p.id)
		FROM pages AS p
		INNER JOIN pages_blocks AS b ON b.revision_id = p.revision_id
		WHERE b.extra_id = $1 AND p.language = $2 AND p.status = 'active'`,
		extraID, language,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count pages for extra %d: %w", extraID, err)
	}
	return count > 0, nil
}

// InsertPage creates an active page with its meta row and a single block
// holding the extra, and returns the page id.
func (s *PageStore) InsertPage(ctx context.Context, p models.Page, extraID int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	url := p.URL
	if url == "" {
		url = slug.Generate(p.Title)
	}

	var metaID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO meta (keywords, description, title, url)
		VALUES ($1, $1, $1, $2) RETURNING id`,
		p.Title, url,
	).Scan(&metaID)
	if err != nil {
		return 0, fmt.Errorf("insert page meta: %w", err)
	}

	var id, revisionID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pages (parent_id, language, title, meta_id, hidden)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, revision_id`,
		p.ParentID, p.Language, p.Title, metaID, p.Hidden,
	).Scan(&id, &revisionID)
	if err != nil {
		return 0, fmt.Errorf("insert page: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages_blocks (revision_id, extra_id) VALUES ($1, $2)`,
		revisionID, extraID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert page block: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit page: %w", err)
	}
	return id, nil
}
