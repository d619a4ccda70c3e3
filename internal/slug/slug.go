// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation for page, category
// and event URLs in any installed language.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace matches runs of spaces, tabs and newlines.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string. Accented
// letters are folded to their base letter.
// Example: "Evenementen in België 2026" → "evenementen-in-belgie-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(fold(s)))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// fold strips combining marks after canonical decomposition, so "é" becomes "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
