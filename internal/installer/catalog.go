// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package installer

import "eventscms/internal/models"

const (
	ModuleName        = "events"
	ModuleDescription = "The events module."

	// BlockName is the main block extra; the events page links to it.
	BlockName = "Events"
	PageTitle = "Events"

	DefaultCategoryName = "Default"
	DefaultCategoryURL  = "default"

	// DefaultCategorySetting holds the id of each language's default category.
	DefaultCategorySetting = "default_category"
)

// Actions are the backend actions the admin group may perform.
var Actions = []string{
	"categories",
	"add_category",
	"edit_category",
	"delete_category",
	"index",
	"add",
	"edit",
	"delete",
	"comments",
	"edit_comment",
	"delete_spam",
	"mass_comment_action",
	"settings",
}

// settingDefault is a setting name with the value an install writes.
type settingDefault struct {
	Name  string
	Value any
}

// GlobalSettings are reset to these values on every install.
var GlobalSettings = []settingDefault{
	{"allow_comments", true},
	{"requires_akismet", true},
	{"spamfilter", false},
	{"moderation", true},
	{"ping_services", true},
	{"overview_num_items", 10},
	{"max_num_revisions", 20},
	{"notify_by_email_on_new_comment_to_moderate", true},
	{"notify_by_email_on_new_comment", true},
}

// LanguageSettings are written once per language; values an editor
// changed afterwards are kept on reinstall.
var LanguageSettings = []settingDefault{
	{"feedburner_url", ""},
	{"rss_meta", true},
	{"rss_title", "RSS"},
	{"rss_description", ""},
}

// Extras are the block and widgets offered to the page builder, in
// admin display order.
var Extras = []models.Extra{
	{Module: ModuleName, Type: models.ExtraTypeBlock, Name: BlockName, Sequence: 5000},
	{Module: ModuleName, Type: models.ExtraTypeWidget, Name: "RecentComments", Action: "recent_comments", Sequence: 5001},
	{Module: ModuleName, Type: models.ExtraTypeWidget, Name: "Categories", Action: "categories", Sequence: 5002},
	{Module: ModuleName, Type: models.ExtraTypeWidget, Name: "Archive", Action: "archive", Sequence: 5003},
}
