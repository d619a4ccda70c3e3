// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ExtraType distinguishes full-page blocks from sidebar widgets.
type ExtraType string

const (
	ExtraTypeBlock  ExtraType = "block"
	ExtraTypeWidget ExtraType = "widget"
)

// Extra is a pluggable UI fragment a module offers to the page builder.
type Extra struct {
	ID       int64     `json:"id"`
	Module   string    `json:"module"`
	Type     ExtraType `json:"type"`
	Name     string    `json:"name"`
	Action   string    `json:"action,omitempty"`
	Data     string    `json:"data,omitempty"`
	Hidden   bool      `json:"hidden"`
	Sequence int       `json:"sequence"`
}

// Page is a site page created by a module installer. The page builder
// attaches the given extra as the page's main block.
type Page struct {
	ID       int64  `json:"id"`
	Language string `json:"language"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Hidden   bool   `json:"hidden"`
}
