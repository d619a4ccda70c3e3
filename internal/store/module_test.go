package store

import (
	"context"
	"testing"

	"eventscms/internal/database"
	"eventscms/internal/models"
)

func TestModuleStoreRegistry(t *testing.T) {
	db := testDB(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := NewModuleStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanModule(t, db, "moduletest") })

	for i := 0; i < 2; i++ {
		if err := s.RegisterModule(ctx, "moduletest", "The module test."); err != nil {
			t.Fatalf("RegisterModule: %v", err)
		}
		if err := s.GrantModuleRights(ctx, database.AdminGroupID, "moduletest"); err != nil {
			t.Fatalf("GrantModuleRights: %v", err)
		}
		for _, a := range []string{"index", "add", "edit"} {
			if err := s.GrantActionRights(ctx, database.AdminGroupID, "moduletest", a); err != nil {
				t.Fatalf("GrantActionRights: %v", err)
			}
		}
		if err := s.MarkSearchable(ctx, "moduletest"); err != nil {
			t.Fatalf("MarkSearchable: %v", err)
		}
	}

	actions, err := s.Actions(ctx, database.AdminGroupID, "moduletest")
	if err != nil {
		t.Fatalf("Actions: %v", err)
	}
	if len(actions) != 3 || actions[0] != "add" || actions[2] != "index" {
		t.Errorf("actions: got %v", actions)
	}

	var level int
	db.QueryRow(`SELECT level FROM groups_rights_actions WHERE group_id = $1 AND module = $2 AND action = 'add'`,
		database.AdminGroupID, "moduletest").Scan(&level)
	if level != 7 {
		t.Errorf("action level: got %d, want 7", level)
	}

	var searchable bool
	db.QueryRow(`SELECT searchable FROM search_modules WHERE module = $1`, "moduletest").Scan(&searchable)
	if !searchable {
		t.Error("module should be searchable")
	}
}

func TestExtraStoreUpsert(t *testing.T) {
	db := testDB(t)
	s := NewExtraStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanModule(t, db, "extratest") })

	e := models.Extra{Module: "extratest", Type: models.ExtraTypeWidget, Name: "Archive", Action: "archive", Sequence: 5003}
	first, err := s.RegisterExtra(ctx, e)
	if err != nil {
		t.Fatalf("RegisterExtra: %v", err)
	}
	e.Sequence = 6000
	second, err := s.RegisterExtra(ctx, e)
	if err != nil {
		t.Fatalf("RegisterExtra (again): %v", err)
	}
	if first != second {
		t.Errorf("ids differ: %d vs %d", first, second)
	}

	block := models.Extra{Module: "extratest", Type: models.ExtraTypeBlock, Name: "Events", Sequence: 5000}
	if _, err := s.RegisterExtra(ctx, block); err != nil {
		t.Fatalf("RegisterExtra (block): %v", err)
	}

	extras := listExtras(t, db, "extratest")
	if len(extras) != 2 {
		t.Fatalf("extras: got %d, want 2", len(extras))
	}
	if extras[0].Name != "Events" || extras[1].Sequence != 6000 {
		t.Errorf("extras: %+v", extras)
	}
	if extras[0].Action != "" {
		t.Errorf("block action should be empty, got %q", extras[0].Action)
	}
}

func TestLocaleStoreInsertOnce(t *testing.T) {
	db := testDB(t)
	s := NewLocaleStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanModule(t, db, "localetest") })

	l := models.LocaleString{Language: "en", Application: "backend", Module: "localetest", Type: models.LocaleLabel, Name: "Add", Value: "add event"}
	inserted, err := s.InsertLocale(ctx, l)
	if err != nil || !inserted {
		t.Fatalf("InsertLocale: inserted=%v err=%v", inserted, err)
	}

	l.Value = "changed"
	inserted, err = s.InsertLocale(ctx, l)
	if err != nil {
		t.Fatalf("InsertLocale (again): %v", err)
	}
	if inserted {
		t.Error("second insert should be skipped")
	}

	value, ok := localeValue(t, db, l)
	if !ok || value != "add event" {
		t.Errorf("value: got %q (found=%v), want original kept", value, ok)
	}

	l.Language = "nl"
	if _, ok := localeValue(t, db, l); ok {
		t.Error("nl translation should not exist")
	}
}
