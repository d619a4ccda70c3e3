// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventscms/internal/models"
)

// EventStore handles events, their comments and meta rows.
type EventStore struct {
	db *sql.DB
}

// NewEventStore creates a new EventStore.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// CountEvents returns the number of events in a language.
func (s *EventStore) CountEvents(ctx context.Context, language string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM events WHERE language = $1`, language).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// InsertEvent stores an event under its own id.
func (s *EventStore) InsertEvent(ctx context.Context, e models.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("invalid event %d/%s: %w", e.ID, e.Language, err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (
			id, language, category_id, user_id, meta_id, title, introduction, text,
			starts_on, ends_on, status, publish_on, created_on, edited_on,
			hidden, allow_comments, num_comments
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		e.ID, e.Language, e.CategoryID, e.UserID, e.MetaID, e.Title, e.Introduction, e.Text,
		e.StartsOn, e.EndsOn, string(e.Status), e.PublishOn, e.CreatedOn, e.EditedOn,
		e.Hidden, e.AllowComments, e.NumComments,
	)
	if err != nil {
		return fmt.Errorf("insert event %d/%s: %w", e.ID, e.Language, err)
	}
	return nil
}

// InsertComment stores a comment and returns its id.
func (s *EventStore) InsertComment(ctx context.Context, c models.Comment) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO events_comments (event_id, language, created_on, author, email, website, text, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		c.EventID, c.Language, c.CreatedOn, c.Author, c.Email, c.Website, c.Text, c.Type, string(c.Status),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert comment on event %d/%s: %w", c.EventID, c.Language, err)
	}
	return id, nil
}

// InsertMeta stores a meta row and returns its id.
func (s *EventStore) InsertMeta(ctx context.Context, m models.Meta) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO meta (keywords, description, title, url)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Keywords, m.Description, m.Title, m.URL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert meta %s: %w", m.URL, err)
	}
	return id, nil
}

// ArchiveNumbers counts the visible, published events of a language per
// calendar month, most recent month first.
func (s *EventStore) ArchiveNumbers(ctx context.Context, language string) ([]models.ArchiveNumber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date_trunc('month', publish_on AT TIME ZONE 'UTC') AS period, COUNT(*)
		FROM events
		WHERE language = $1 AND status = 'active' AND hidden = FALSE AND publish_on <= $2
		GROUP BY period
		ORDER BY period DESC`, language, time.Now())
	if err != nil {
		return nil, fmt.Errorf("archive numbers: %w", err)
	}
	defer rows.Close()

	var numbers []models.ArchiveNumber
	for rows.Next() {
		var n models.ArchiveNumber
		if err := rows.Scan(&n.Period, &n.Count); err != nil {
			return nil, fmt.Errorf("scan archive number: %w", err)
		}
		n.Period = n.Period.UTC()
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
