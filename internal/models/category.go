// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category groups events within a single language. Every language has
// one default category, referenced by the default_category setting.
type Category struct {
	ID       int64  `json:"id"`
	Language string `json:"language"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}
