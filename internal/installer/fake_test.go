package installer

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"eventscms/internal/models"
)

// fakeHost is an in-memory host CMS implementing every collaborator the
// installer writes through. Unique constraints mirror the PostgreSQL schema.
type fakeHost struct {
	schemaApplied int
	modules       map[string]string
	moduleRights  map[int][]string
	actionRights  map[int]map[string]bool
	searchable    map[string]bool
	settings      map[models.SettingKey][]byte
	extras        []models.Extra
	locale        map[models.LocaleString]bool
	pages         []fakePage
	categories    []models.Category
	events        []models.Event
	comments      []models.Comment
	meta          []models.Meta
	userID        int64

	// fail makes the named operation return errBoom.
	fail string
}

type fakePage struct {
	ID      int64
	Page    models.Page
	ExtraID int64
}

var errBoom = errors.New("boom")

func newFakeHost() *fakeHost {
	return &fakeHost{
		modules:      make(map[string]string),
		moduleRights: make(map[int][]string),
		actionRights: make(map[int]map[string]bool),
		searchable:   make(map[string]bool),
		settings:     make(map[models.SettingKey][]byte),
		locale:       make(map[models.LocaleString]bool),
		userID:       1,
	}
}

func (h *fakeHost) deps() Deps {
	return Deps{
		Schema:     h,
		Modules:    h,
		Settings:   h,
		Extras:     h,
		Locale:     h,
		Pages:      h,
		Categories: h,
		Content:    h,
		Users:      h,
	}
}

func (h *fakeHost) check(op string) error {
	if h.fail == op {
		return errBoom
	}
	return nil
}

func (h *fakeHost) ApplySchema(ctx context.Context) error {
	if err := h.check("ApplySchema"); err != nil {
		return err
	}
	h.schemaApplied++
	return nil
}

func (h *fakeHost) RegisterModule(ctx context.Context, name, description string) error {
	if err := h.check("RegisterModule"); err != nil {
		return err
	}
	h.modules[name] = description
	return nil
}

func (h *fakeHost) GrantModuleRights(ctx context.Context, groupID int, module string) error {
	for _, m := range h.moduleRights[groupID] {
		if m == module {
			return nil
		}
	}
	h.moduleRights[groupID] = append(h.moduleRights[groupID], module)
	return nil
}

func (h *fakeHost) GrantActionRights(ctx context.Context, groupID int, module, action string) error {
	if h.actionRights[groupID] == nil {
		h.actionRights[groupID] = make(map[string]bool)
	}
	h.actionRights[groupID][module+"/"+action] = true
	return nil
}

func (h *fakeHost) MarkSearchable(ctx context.Context, module string) error {
	h.searchable[module] = true
	return nil
}

func (h *fakeHost) Get(ctx context.Context, key models.SettingKey, dst any) (bool, error) {
	raw, ok := h.settings[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (h *fakeHost) Set(ctx context.Context, key models.SettingKey, value any) error {
	if err := h.check("Set"); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	h.settings[key] = raw
	return nil
}

func (h *fakeHost) SetDefault(ctx context.Context, key models.SettingKey, value any) error {
	if _, ok := h.settings[key]; ok {
		return nil
	}
	return h.Set(ctx, key, value)
}

func (h *fakeHost) RegisterExtra(ctx context.Context, e models.Extra) (int64, error) {
	for i, existing := range h.extras {
		if existing.Module == e.Module && existing.Type == e.Type && existing.Name == e.Name {
			e.ID = existing.ID
			h.extras[i] = e
			return e.ID, nil
		}
	}
	e.ID = int64(len(h.extras) + 1)
	h.extras = append(h.extras, e)
	return e.ID, nil
}

func (h *fakeHost) InsertLocale(ctx context.Context, l models.LocaleString) (bool, error) {
	if err := h.check("InsertLocale"); err != nil {
		return false, err
	}
	key := l
	key.Value = ""
	if h.locale[key] {
		return false, nil
	}
	h.locale[key] = true
	return true, nil
}

func (h *fakeHost) PageExistsForExtra(ctx context.Context, extraID int64, language string) (bool, error) {
	for _, p := range h.pages {
		if p.ExtraID == extraID && p.Page.Language == language {
			return true, nil
		}
	}
	return false, nil
}

func (h *fakeHost) InsertPage(ctx context.Context, p models.Page, extraID int64) (int64, error) {
	id := int64(len(h.pages) + 1)
	h.pages = append(h.pages, fakePage{ID: id, Page: p, ExtraID: extraID})
	return id, nil
}

func (h *fakeHost) FirstCategory(ctx context.Context, language string) (int64, bool, error) {
	for _, c := range h.categories {
		if c.Language == language {
			return c.ID, true, nil
		}
	}
	return 0, false, nil
}

func (h *fakeHost) CategoryExists(ctx context.Context, language string, id int64) (bool, error) {
	for _, c := range h.categories {
		if c.Language == language && c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (h *fakeHost) CreateCategory(ctx context.Context, c models.Category) (int64, error) {
	c.ID = int64(100 + len(h.categories))
	h.categories = append(h.categories, c)
	return c.ID, nil
}

func (h *fakeHost) CountEvents(ctx context.Context, language string) (int, error) {
	n := 0
	for _, e := range h.events {
		if e.Language == language {
			n++
		}
	}
	return n, nil
}

func (h *fakeHost) InsertEvent(ctx context.Context, e models.Event) error {
	for _, existing := range h.events {
		if existing.ID == e.ID && existing.Language == e.Language {
			return errors.New("duplicate event")
		}
	}
	h.events = append(h.events, e)
	return nil
}

func (h *fakeHost) InsertComment(ctx context.Context, c models.Comment) (int64, error) {
	c.ID = int64(len(h.comments) + 1)
	h.comments = append(h.comments, c)
	return c.ID, nil
}

func (h *fakeHost) InsertMeta(ctx context.Context, m models.Meta) (int64, error) {
	m.ID = int64(len(h.meta) + 1)
	h.meta = append(h.meta, m)
	return m.ID, nil
}

func (h *fakeHost) DefaultUserID(ctx context.Context) (int64, error) {
	return h.userID, nil
}

// setting decodes a stored setting, failing the lookup if it is absent.
func (h *fakeHost) setting(key models.SettingKey, dst any) bool {
	raw, ok := h.settings[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (h *fakeHost) categoriesIn(language string) []models.Category {
	var out []models.Category
	for _, c := range h.categories {
		if c.Language == language {
			out = append(out, c)
		}
	}
	return out
}

func (h *fakeHost) actions(groupID int) []string {
	var out []string
	for a := range h.actionRights[groupID] {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}
