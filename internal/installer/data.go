// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package installer

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"gopkg.in/yaml.v3"

	"eventscms/internal/models"
)

// dataFS holds the schema migrations, the translation catalog and the
// example texts shipped with the module.
//
//go:embed data
var dataFS embed.FS

// SchemaFS returns the module's goose migrations, rooted at the
// migration files.
func SchemaFS() fs.FS {
	sub, err := fs.Sub(dataFS, "data/schema")
	if err != nil {
		panic(err)
	}
	return sub
}

// localeTree mirrors locale.yaml:
// language > application > module > type > name > value.
type localeTree map[string]map[string]map[string]map[models.LocaleType]map[string]string

// LocaleCatalog returns the embedded translations in a stable order.
func LocaleCatalog() ([]models.LocaleString, error) {
	src, err := fs.ReadFile(dataFS, "data/locale.yaml")
	if err != nil {
		return nil, fmt.Errorf("read locale catalog: %w", err)
	}
	return ParseLocaleCatalog(src)
}

// ParseLocaleCatalog decodes a YAML translation catalog. Entries are
// sorted by language, application, module, type and name.
func ParseLocaleCatalog(src []byte) ([]models.LocaleString, error) {
	var tree localeTree
	if err := yaml.Unmarshal(src, &tree); err != nil {
		return nil, fmt.Errorf("parse locale catalog: %w", err)
	}

	var out []models.LocaleString
	for lang, apps := range tree {
		for app, mods := range apps {
			for mod, types := range mods {
				for typ, names := range types {
					if !typ.Valid() {
						return nil, fmt.Errorf("locale %s/%s/%s: unknown type %q", lang, app, mod, typ)
					}
					for name, value := range names {
						out = append(out, models.LocaleString{
							Language:    lang,
							Application: app,
							Module:      mod,
							Type:        typ,
							Name:        name,
							Value:       value,
						})
					}
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Language != b.Language {
			return a.Language < b.Language
		}
		if a.Application != b.Application {
			return a.Application < b.Application
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Name < b.Name
	})
	return out, nil
}
