package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// AdminGroupID is the group seeded as the super-admin group.
const AdminGroupID = 1

// Seed populates the database with the data module installers rely on:
// the admin group and a default admin user who owns installer-created
// content. It is a no-op if users exist already.
func Seed(db *sql.DB) error {
	_, err := db.Exec(`
		INSERT INTO groups (id, name) VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING`, AdminGroupID, "admin")
	if err != nil {
		return fmt.Errorf("seed admin group: %w", err)
	}
	// Keep the serial ahead of the explicitly inserted id.
	if _, err := db.Exec(`SELECT setval('groups_id_seq', GREATEST((SELECT MAX(id) FROM groups), 1))`); err != nil {
		return fmt.Errorf("seed group sequence: %w", err)
	}

	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (group_id, email, password_hash, display_name, is_god)
		VALUES ($1, $2, $3, $4, $5)
	`, AdminGroupID, "admin@eventscms.local", string(hash), "Admin", true)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@eventscms.local",
		"password", "admin",
	)

	return nil
}
