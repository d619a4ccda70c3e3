// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package installer

import (
	"context"
	"fmt"
	"log/slog"

	"eventscms/internal/models"
)

// categoryOutcome describes what ensureDefaultCategory did.
type categoryOutcome int

const (
	categoryUnchanged categoryOutcome = iota
	categoryCreated
	categoryRepaired
)

// ensureDefaultCategory makes the default_category setting of a language
// point at an existing category of that language. A language without
// categories gets a new "Default" category; a setting that is missing or
// names a category that no longer exists is repointed at the language's
// first category.
func (in *Installer) ensureDefaultCategory(ctx context.Context, lang string) (categoryOutcome, error) {
	key := models.LanguageSetting(ModuleName, DefaultCategorySetting, lang)

	first, found, err := in.deps.Categories.FirstCategory(ctx, lang)
	if err != nil {
		return categoryUnchanged, err
	}

	if !found {
		id, err := in.deps.Categories.CreateCategory(ctx, models.Category{
			Language: lang,
			Name:     DefaultCategoryName,
			URL:      DefaultCategoryURL,
		})
		if err != nil {
			return categoryUnchanged, fmt.Errorf("create default category: %w", err)
		}
		if err := in.deps.Settings.Set(ctx, key, id); err != nil {
			return categoryUnchanged, err
		}
		slog.Info("default category created", "language", lang, "category_id", id)
		return categoryCreated, nil
	}

	var current int64
	ok, err := in.deps.Settings.Get(ctx, key, &current)
	if err != nil {
		return categoryUnchanged, err
	}
	if ok {
		exists, err := in.deps.Categories.CategoryExists(ctx, lang, current)
		if err != nil {
			return categoryUnchanged, err
		}
		if exists {
			return categoryUnchanged, nil
		}
	}

	if err := in.deps.Settings.Set(ctx, key, first); err != nil {
		return categoryUnchanged, err
	}
	slog.Warn("default category repaired",
		"language", lang,
		"setting", key.String(),
		"was", current,
		"now", first,
	)
	return categoryRepaired, nil
}
