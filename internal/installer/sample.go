// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"time"

	"eventscms/internal/markdown"
	"eventscms/internal/models"
	"eventscms/internal/slug"
)

// fallbackSampleLanguage provides example texts for languages without their own.
const fallbackSampleLanguage = "en"

// sampleComment is an example reaction seeded on the first event.
type sampleComment struct {
	Author, Email, Website, Text string
}

var sampleComments = []sampleComment{
	{"Matthias Mullie", "matthias@spoon-library.com", "http://www.anantasoft.com", "cool!"},
	{"Davy Hellemans", "davy@spoon-library.com", "http://www.spoon-library.com", "awesome!"},
	{"Tijs Verkoyen", "tijs@spoon-library.com", "http://www.sumocoders.be", "wicked!"},
}

// installExampleData seeds two events and three comments into a language
// that has no events yet. It reports whether anything was written.
func (in *Installer) installExampleData(ctx context.Context, lang string) (bool, error) {
	count, err := in.deps.Content.CountEvents(ctx, lang)
	if err != nil {
		return false, err
	}
	if count > 0 {
		slog.Debug("events exist, skipping example data", "language", lang, "count", count)
		return false, nil
	}

	var categoryID int64
	ok, err := in.deps.Settings.Get(ctx, models.LanguageSetting(ModuleName, DefaultCategorySetting, lang), &categoryID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("no default category for %s", lang)
	}

	userID, err := in.deps.Users.DefaultUserID(ctx)
	if err != nil {
		return false, err
	}

	body, err := in.sampleText(lang)
	if err != nil {
		return false, err
	}

	now := in.now().UTC().Truncate(time.Minute)
	year := now.Year()
	minute := now.Minute()
	endsOn := time.Date(year, time.October, 11, 18, minute, 0, 0, time.UTC)

	events := []struct {
		event    models.Event
		comments []sampleComment
	}{
		{
			event: models.Event{
				ID:        1,
				Title:     "Nunc sediam est",
				StartsOn:  time.Date(year, time.June, 20, 11, 24, 0, 0, time.UTC),
				PublishOn: now,
			},
			comments: sampleComments,
		},
		{
			event: models.Event{
				ID:        2,
				Title:     "Lorem ipsum",
				StartsOn:  time.Date(year, time.October, 11, 9, minute, 0, 0, time.UTC),
				EndsOn:    &endsOn,
				PublishOn: now.Add(-time.Minute),
			},
		},
	}

	for _, item := range events {
		e := item.event
		metaID, err := in.deps.Content.InsertMeta(ctx, models.Meta{
			Keywords:    e.Title,
			Description: e.Title,
			Title:       e.Title,
			URL:         slug.Generate(e.Title),
		})
		if err != nil {
			return false, err
		}

		e.Language = lang
		e.CategoryID = categoryID
		e.UserID = userID
		e.MetaID = metaID
		e.Introduction = body
		e.Text = body
		e.Status = models.EventStatusActive
		e.CreatedOn = e.PublishOn
		e.EditedOn = e.PublishOn
		e.AllowComments = true
		e.NumComments = len(item.comments)
		if err := in.deps.Content.InsertEvent(ctx, e); err != nil {
			return false, err
		}

		for _, c := range item.comments {
			_, err := in.deps.Content.InsertComment(ctx, models.Comment{
				EventID:   e.ID,
				Language:  lang,
				CreatedOn: now,
				Author:    c.Author,
				Email:     c.Email,
				Website:   c.Website,
				Text:      c.Text,
				Type:      "comment",
				Status:    models.CommentStatusPublished,
			})
			if err != nil {
				return false, err
			}
		}
	}

	slog.Info("example data installed", "language", lang, "events", len(events), "comments", len(sampleComments))
	return true, nil
}

// sampleText renders the example text of a language, falling back to
// the English text when the language has none.
func (in *Installer) sampleText(lang string) (string, error) {
	name := path.Join("data", lang, "sample1.md")
	if _, err := fs.Stat(in.samples, name); errors.Is(err, fs.ErrNotExist) {
		name = path.Join("data", fallbackSampleLanguage, "sample1.md")
	}
	return markdown.FileToHTML(in.samples, name)
}
