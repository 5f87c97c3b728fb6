package state

import (
	"database/sql"
	"fmt"
	"log"
	"stonepay_admin/pkg/dbconnect/migration"
)

const (
	RegistryMigration   = "console.migrations"
	AdminStateMigration = "console.admin_state"
)

// placeholder returns the n-th bind parameter for dialect.
func placeholder(dialect string, n int) string {
	if dialect == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func alreadyApplied(db *sql.DB, dialect, name string) (bool, error) {
	var migrationExists bool
	query := "SELECT EXISTS (SELECT 1 FROM console_migrations WHERE name = " + placeholder(dialect, 1) + ")"
	if err := db.QueryRow(query, name).Scan(&migrationExists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return migrationExists, nil
}

func markApplied(db *sql.DB, dialect, name string) error {
	query := "INSERT INTO console_migrations (name, time) VALUES (" + placeholder(dialect, 1) + ", current_timestamp)"
	if _, err := db.Exec(query, name); err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", name, err)
	}
	return nil
}

// Registry creates the bookkeeping table every other migration consults.
type Registry struct{}

func (m *Registry) Name() string { return RegistryMigration }

func (m *Registry) UpMigration(db *sql.DB, dialect string) error {
	query := `
		CREATE TABLE IF NOT EXISTS console_migrations (
			name VARCHAR(128) PRIMARY KEY,
			time TIMESTAMP NOT NULL
		)`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create console_migrations table: %w", err)
	}
	return nil
}

// AdminState creates the namespaced key/value table behind persist.SQLPersister.
type AdminState struct{}

func (m *AdminState) Name() string { return AdminStateMigration }

func (m *AdminState) UpMigration(db *sql.DB, dialect string) error {
	done, err := alreadyApplied(db, dialect, AdminStateMigration)
	if err != nil {
		return err
	}
	if done {
		log.Printf("Migration '%s' already completed. Skipping.", AdminStateMigration)
		return nil
	}

	payloadType := "JSONB"
	if dialect == "mysql" {
		payloadType = "LONGTEXT"
	}
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS admin_state (
			namespace VARCHAR(128) PRIMARY KEY,
			version INT NOT NULL,
			payload %s NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`, payloadType)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create admin_state table: %w", err)
	}
	if err := markApplied(db, dialect, AdminStateMigration); err != nil {
		return err
	}

	log.Printf("Migration '%s' completed successfully.", AdminStateMigration)
	return nil
}

// All returns the migrations in application order.
func All() []migration.MigrationInterface {
	return []migration.MigrationInterface{&Registry{}, &AdminState{}}
}
