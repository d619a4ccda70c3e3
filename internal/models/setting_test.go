package models

import "testing"

func TestSettingKeyString(t *testing.T) {
	tests := []struct {
		name string
		key  SettingKey
		want string
	}{
		{name: "global", key: GlobalSetting("events", "allow_comments"), want: "allow_comments"},
		{name: "language", key: LanguageSetting("events", "default_category", "en"), want: "default_category_en"},
		{name: "region tag", key: LanguageSetting("events", "rss_title", "en-US"), want: "rss_title_en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSettingKeyDistinct verifies the same name in two languages, and a
// global with the same name, are separate keys.
func TestSettingKeyDistinct(t *testing.T) {
	keys := map[SettingKey]bool{
		GlobalSetting("events", "rss_title"):         true,
		LanguageSetting("events", "rss_title", "en"): true,
		LanguageSetting("events", "rss_title", "nl"): true,
		GlobalSetting("blog", "rss_title"):           true,
	}
	if len(keys) != 4 {
		t.Errorf("expected 4 distinct keys, got %d", len(keys))
	}
}

func TestLocaleTypeValid(t *testing.T) {
	for _, typ := range []LocaleType{LocaleAction, LocaleError, LocaleLabel, LocaleMessage} {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}
	for _, typ := range []LocaleType{"", "txt", "LBL"} {
		if typ.Valid() {
			t.Errorf("%q should be invalid", typ)
		}
	}
}
