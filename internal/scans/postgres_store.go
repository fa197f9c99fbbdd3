package scans

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store with PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL-backed scan store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the scans table. Deployments normally run cmd/migrate
// instead; this keeps demo setups working without goose.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS scans (
			id         VARCHAR(36) PRIMARY KEY,
			detector   VARCHAR(20) NOT NULL,
			label      VARCHAR(50) NOT NULL,
			result     VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_scans_created ON scans(created_at DESC);
	`)
	return err
}

func (p *PostgresStore) Load(ctx context.Context) ([]*Record, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, detector, label, result, created_at
		FROM scans
		ORDER BY created_at DESC, id
		LIMIT $1
	`, Capacity)
	if err != nil {
		return nil, fmt.Errorf("load scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		r := &Record{}
		if err := rows.Scan(&r.ID, &r.Type, &r.Label, &r.Result, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgresStore) Insert(ctx context.Context, r *Record) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO scans (id, detector, label, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ID, r.Type, r.Label, r.Result, r.Timestamp)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	return nil
}

func (p *PostgresStore) Prune(ctx context.Context, keep int) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM scans
		WHERE id NOT IN (
			SELECT id FROM scans ORDER BY created_at DESC, id LIMIT $1
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("prune scans: %w", err)
	}
	return nil
}
