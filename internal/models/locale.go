// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// LocaleType is the kind of translated string.
type LocaleType string

const (
	LocaleAction  LocaleType = "act"
	LocaleError   LocaleType = "err"
	LocaleLabel   LocaleType = "lbl"
	LocaleMessage LocaleType = "msg"
)

// Valid reports whether t is one of the known locale types.
func (t LocaleType) Valid() bool {
	switch t {
	case LocaleAction, LocaleError, LocaleLabel, LocaleMessage:
		return true
	}
	return false
}

// LocaleString is a single translation, unique per
// (language, application, module, type, name).
type LocaleString struct {
	Language    string     `json:"language" yaml:"language"`
	Application string     `json:"application" yaml:"application"`
	Module      string     `json:"module" yaml:"module"`
	Type        LocaleType `json:"type" yaml:"type"`
	Name        string     `json:"name" yaml:"name"`
	Value       string     `json:"value" yaml:"value"`
}
