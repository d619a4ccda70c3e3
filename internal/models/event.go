// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation limits for event fields.
const (
	maxTitleLen = 300
	maxTextLen  = 100_000
)

// EventStatus represents the publishing state of an event.
type EventStatus string

const (
	EventStatusActive EventStatus = "active"
	EventStatusDraft  EventStatus = "draft"
)

// Event is a dated post of the events module. IDs are unique per
// language, so the same ID can exist once in every language.
type Event struct {
	ID            int64       `json:"id"`
	Language      string      `json:"language"`
	CategoryID    int64       `json:"category_id"`
	UserID        int64       `json:"user_id"`
	MetaID        int64       `json:"meta_id"`
	Title         string      `json:"title"`
	Introduction  string      `json:"introduction"`
	Text          string      `json:"text"`
	StartsOn      time.Time   `json:"starts_on"`
	EndsOn        *time.Time  `json:"ends_on,omitempty"`
	Status        EventStatus `json:"status"`
	PublishOn     time.Time   `json:"publish_on"`
	CreatedOn     time.Time   `json:"created_on"`
	EditedOn      time.Time   `json:"edited_on"`
	Hidden        bool        `json:"hidden"`
	AllowComments bool        `json:"allow_comments"`
	NumComments   int         `json:"num_comments"`
}

// Validate checks an event before it is stored and returns the first
// problem found.
func (e *Event) Validate() error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return errors.New("title is too long (max 300 characters)")
	}
	if utf8.RuneCountInString(e.Introduction) > maxTextLen || utf8.RuneCountInString(e.Text) > maxTextLen {
		return errors.New("text is too long (max 100,000 characters)")
	}
	if e.Language == "" {
		return errors.New("language is required")
	}
	if e.Status != EventStatusActive && e.Status != EventStatusDraft {
		return errors.New("status must be active or draft")
	}
	if e.StartsOn.IsZero() {
		return errors.New("start date is required")
	}
	if e.EndsOn != nil && e.EndsOn.Before(e.StartsOn) {
		return errors.New("end date is before the start date")
	}
	return nil
}

// CommentStatus represents the moderation state of a comment.
type CommentStatus string

const (
	CommentStatusPublished  CommentStatus = "published"
	CommentStatusModeration CommentStatus = "moderation"
	CommentStatusSpam       CommentStatus = "spam"
)

// Comment is a visitor reaction on an event.
type Comment struct {
	ID        int64         `json:"id"`
	EventID   int64         `json:"event_id"`
	Language  string        `json:"language"`
	CreatedOn time.Time     `json:"created_on"`
	Author    string        `json:"author"`
	Email     string        `json:"email"`
	Website   string        `json:"website"`
	Text      string        `json:"text"`
	Type      string        `json:"type"`
	Status    CommentStatus `json:"status"`
}

// Meta holds the SEO fields and URL of a content item.
type Meta struct {
	ID          int64  `json:"id"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
	Title       string `json:"title"`
	URL         string `json:"url"`
}

// ArchiveNumber is the number of published events in one calendar month.
type ArchiveNumber struct {
	Period time.Time `json:"period"`
	Count  int       `json:"count"`
}
