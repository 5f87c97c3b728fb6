package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stonepay_admin/pkg/dbconnect"
)

// SQLPersister stores records in the admin_state table created by
// migrations/state. Postgres and MySQL are supported.
type SQLPersister struct {
	db      *sql.DB
	dialect string
}

func NewSQLPersister(database dbconnect.Database) (*SQLPersister, error) {
	db, err := database.Connect()
	if err != nil {
		return nil, err
	}
	switch database.Dialect() {
	case "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported dialect %q", database.Dialect())
	}
	return &SQLPersister{db: db, dialect: database.Dialect()}, nil
}

func (s *SQLPersister) Load(ctx context.Context, namespace string) (Record, error) {
	query := "SELECT version, payload, updated_at FROM admin_state WHERE namespace = $1"
	if s.dialect == "mysql" {
		query = "SELECT version, payload, updated_at FROM admin_state WHERE namespace = ?"
	}
	var rec Record
	var payload string
	err := s.db.QueryRowContext(ctx, query, namespace).Scan(&rec.Version, &payload, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("load %s: %w", namespace, err)
	}
	rec.Payload = []byte(payload)
	return rec, nil
}

func (s *SQLPersister) Save(ctx context.Context, namespace string, rec Record) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO admin_state (namespace, version, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace) DO UPDATE
		SET version = EXCLUDED.version, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if s.dialect == "mysql" {
		query = `
		INSERT INTO admin_state (namespace, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		version = VALUES(version), payload = VALUES(payload), updated_at = VALUES(updated_at)`
	}
	if _, err := s.db.ExecContext(ctx, query, namespace, rec.Version, string(rec.Payload), rec.UpdatedAt); err != nil {
		return fmt.Errorf("save %s: %w", namespace, err)
	}
	return nil
}

func (s *SQLPersister) Delete(ctx context.Context, namespace string) error {
	query := "DELETE FROM admin_state WHERE namespace = $1"
	if s.dialect == "mysql" {
		query = "DELETE FROM admin_state WHERE namespace = ?"
	}
	if _, err := s.db.ExecContext(ctx, query, namespace); err != nil {
		return fmt.Errorf("delete %s: %w", namespace, err)
	}
	return nil
}
