// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"eventscms/internal/database"
	"eventscms/internal/installer"
	"eventscms/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "eventscms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "eventscms")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and applies the host
// migrations and the events schema. If the database is unavailable, the
// test is skipped. A cleanup function is registered to close the
// connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	schema := database.NewModuleSchema(db, installer.ModuleName, installer.SchemaFS())
	if err := schema.ApplySchema(context.Background()); err != nil {
		db.Close()
		t.Fatalf("failed to apply events schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanModule removes a test module with its rights, settings, extras
// and translations. Call in t.Cleanup().
func cleanModule(t *testing.T, db *sql.DB, module string) {
	t.Helper()
	db.Exec("DELETE FROM pages_blocks WHERE extra_id IN (SELECT id FROM modules_extras WHERE module = $1)", module)
	db.Exec("DELETE FROM modules_extras WHERE module = $1", module)
	db.Exec("DELETE FROM modules_settings WHERE module = $1", module)
	db.Exec("DELETE FROM locale WHERE module = $1", module)
	db.Exec("DELETE FROM modules WHERE name = $1", module)
}

// cleanLanguage removes events, categories and pages of a test language.
// Call in t.Cleanup().
func cleanLanguage(t *testing.T, db *sql.DB, language string) {
	t.Helper()
	db.Exec("DELETE FROM events WHERE language = $1", language)
	db.Exec("DELETE FROM events_categories WHERE language = $1", language)
	db.Exec("DELETE FROM pages WHERE language = $1", language)
}

// testUserID returns the id of a user that may own test content.
func testUserID(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	if err := database.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	id, err := NewUserStore(db).DefaultUserID(context.Background())
	if err != nil {
		t.Fatalf("DefaultUserID: %v", err)
	}
	return id
}

// listCategories returns the categories of a language ordered by id.
func listCategories(t *testing.T, db *sql.DB, language string) []models.Category {
	t.Helper()
	rows, err := db.Query(`
		SELECT id, language, name, url FROM events_categories
		WHERE language = $1 ORDER BY id`, language)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Language, &c.Name, &c.URL); err != nil {
			t.Fatalf("scan category: %v", err)
		}
		items = append(items, c)
	}
	return items
}

// listExtras returns a module's extras in display order.
func listExtras(t *testing.T, db *sql.DB, module string) []models.Extra {
	t.Helper()
	rows, err := db.Query(`
		SELECT id, name, COALESCE(action, ''), sequence
		FROM modules_extras WHERE module = $1
		ORDER BY sequence, id`, module)
	if err != nil {
		t.Fatalf("list extras: %v", err)
	}
	defer rows.Close()

	var extras []models.Extra
	for rows.Next() {
		e := models.Extra{Module: module}
		if err := rows.Scan(&e.ID, &e.Name, &e.Action, &e.Sequence); err != nil {
			t.Fatalf("scan extra: %v", err)
		}
		extras = append(extras, e)
	}
	return extras
}

// settingRow is a stored setting in its flat form.
type settingRow struct {
	Key   string
	Value string
}

// listSettings returns every setting of a module ordered by name and language.
func listSettings(t *testing.T, db *sql.DB, module string) []settingRow {
	t.Helper()
	rows, err := db.Query(`
		SELECT name, language, value FROM modules_settings
		WHERE module = $1 ORDER BY name, language`, module)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	defer rows.Close()

	var out []settingRow
	for rows.Next() {
		var key models.SettingKey
		var value string
		if err := rows.Scan(&key.Name, &key.Language, &value); err != nil {
			t.Fatalf("scan setting: %v", err)
		}
		out = append(out, settingRow{Key: key.String(), Value: value})
	}
	return out
}

// localeValue returns a stored translation and whether it exists.
func localeValue(t *testing.T, db *sql.DB, l models.LocaleString) (string, bool) {
	t.Helper()
	var value string
	err := db.QueryRow(`
		SELECT value FROM locale
		WHERE language = $1 AND application = $2 AND module = $3 AND type = $4 AND name = $5`,
		l.Language, l.Application, l.Module, string(l.Type), l.Name,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		t.Fatalf("find locale: %v", err)
	}
	return value, true
}

// eventTitle returns the title and end of an event, or found=false.
func eventTitle(t *testing.T, db *sql.DB, id int64, language string) (title string, endsOn *time.Time, found bool) {
	t.Helper()
	err := db.QueryRow(`
		SELECT title, ends_on FROM events WHERE id = $1 AND language = $2`, id, language,
	).Scan(&title, &endsOn)
	if err == sql.ErrNoRows {
		return "", nil, false
	}
	if err != nil {
		t.Fatalf("find event: %v", err)
	}
	return title, endsOn, true
}

// countComments returns the number of comments on an event.
func countComments(t *testing.T, db *sql.DB, eventID int64, language string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`
		SELECT COUNT(id) FROM events_comments WHERE event_id = $1 AND language = $2`,
		eventID, language,
	).Scan(&n); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	return n
}
