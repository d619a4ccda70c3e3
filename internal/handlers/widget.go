// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the events module's widget fragments over HTTP.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
)

// ArchiveRenderer renders the archive fragment of a language.
type ArchiveRenderer interface {
	Render(ctx context.Context, language string) ([]byte, error)
}

// Widgets groups the handlers for widget fragments, which the page
// builder embeds into site pages.
type Widgets struct {
	archive   ArchiveRenderer
	languages map[string]bool
}

// NewWidgets creates the widget handlers. Only the given site languages
// are served; any other language yields 404.
func NewWidgets(archive ArchiveRenderer, languages []string) *Widgets {
	set := make(map[string]bool, len(languages))
	for _, l := range languages {
		set[l] = true
	}
	return &Widgets{archive: archive, languages: set}
}

// EventsArchive renders the events archive widget for the {lang} URL parameter.
func (h *Widgets) EventsArchive(w http.ResponseWriter, r *http.Request) {
	lang, ok := h.language(chi.URLParam(r, "lang"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	html, err := h.archive.Render(r.Context(), lang)
	if err != nil {
		slog.Error("render archive widget failed", "error", err, "language", lang)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// language resolves a URL language to its canonical tag, if the site serves it.
func (h *Widgets) language(raw string) (string, bool) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	lang := tag.String()
	return lang, h.languages[lang]
}
