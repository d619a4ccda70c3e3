// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SettingKey identifies a module setting. Language is empty for global
// settings; language-scoped settings share a Name across languages.
type SettingKey struct {
	Module   string
	Name     string
	Language string
}

// GlobalSetting returns the key of a setting that applies to every language.
func GlobalSetting(module, name string) SettingKey {
	return SettingKey{Module: module, Name: name}
}

// LanguageSetting returns the key of a per-language setting.
func LanguageSetting(module, name, language string) SettingKey {
	return SettingKey{Module: module, Name: name, Language: language}
}

// String renders the key in its flat "name_<lang>" form, e.g. default_category_en.
func (k SettingKey) String() string {
	if k.Language == "" {
		return k.Name
	}
	return k.Name + "_" + k.Language
}
