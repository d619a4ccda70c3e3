// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package widget renders the sidebar fragments the events module offers
// to the page builder.
package widget

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"eventscms/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// ArchiveReader returns per-month counts of published events, most recent
// month first.
type ArchiveReader interface {
	ArchiveNumbers(ctx context.Context, language string) ([]models.ArchiveNumber, error)
}

// FragmentCache stores rendered fragments. Get reports a miss for absent
// or expired entries; Set with a ttl of zero or less stores nothing.
type FragmentCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte, ttl time.Duration)
}

// ArchiveBinding is the name the archive numbers are bound under in the template.
const ArchiveBinding = "widgetEventsArchive"

// CacheKey returns the cache key of the archive fragment of a language.
func CacheKey(language string) string {
	return language + "_eventsWidgetArchiveCache"
}

// Archive renders the events archive widget: links to every month with
// published events and the number of events in it.
type Archive struct {
	reader ArchiveReader
	cache  FragmentCache
	ttl    time.Duration

	// renders deduplicates concurrent misses for the same language.
	renders singleflight.Group
}

// NewArchive creates an archive widget. Rendered fragments are cached
// per language for ttl; a ttl of zero or less disables caching.
func NewArchive(reader ArchiveReader, cache FragmentCache, ttl time.Duration) *Archive {
	return &Archive{reader: reader, cache: cache, ttl: ttl}
}

// renderTimeout bounds a shared render once it no longer follows the
// context of the caller that started it.
const renderTimeout = 30 * time.Second

// Render returns the archive fragment of a language. A cached fragment is
// returned as is without consulting the reader. Concurrent misses in one
// process share a single render that outlives any one caller; a caller
// whose context ends stops waiting without failing the others. Separate
// processes may still render and store the same fragment, the last write
// wins.
func (a *Archive) Render(ctx context.Context, language string) ([]byte, error) {
	ctx, span := otel.Tracer("eventscms/internal/widget").Start(ctx, "render events archive")
	defer span.End()
	span.SetAttributes(attribute.String("widget.language", language))

	key := CacheKey(language)
	if a.ttl > 0 {
		if html, ok := a.cache.Get(ctx, key); ok {
			span.SetAttributes(attribute.Bool("widget.cached", true))
			return bytes.Clone(html), nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := a.renders.DoChan(key, func() (any, error) {
		rctx, cancel := context.WithTimeout(shared, renderTimeout)
		defer cancel()
		// A flight that finished just before this one started has
		// already stored the fragment.
		if a.ttl > 0 {
			if html, ok := a.cache.Get(rctx, key); ok {
				return html, nil
			}
		}
		return a.render(rctx, language)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			return nil, res.Err
		}
		return bytes.Clone(res.Val.([]byte)), nil
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return nil, ctx.Err()
	}
}

// render reads the archive numbers, executes the template and stores the
// result for the configured ttl.
func (a *Archive) render(ctx context.Context, language string) ([]byte, error) {
	numbers, err := a.reader.ArchiveNumbers(ctx, language)
	if err != nil {
		return nil, fmt.Errorf("archive numbers for %s: %w", language, err)
	}

	var buf bytes.Buffer
	data := map[string]any{
		ArchiveBinding: numbers,
		"language":     language,
	}
	if err := templates.ExecuteTemplate(&buf, "archive", data); err != nil {
		return nil, fmt.Errorf("render archive widget: %w", err)
	}

	// Callers get their own copies; buf stays owned by the cache.
	html := buf.Bytes()
	if a.ttl > 0 {
		key := CacheKey(language)
		a.cache.Set(ctx, key, html, a.ttl)
		slog.Debug("archive widget cached", "key", key, "ttl", a.ttl, "months", len(numbers))
	}
	return html, nil
}
