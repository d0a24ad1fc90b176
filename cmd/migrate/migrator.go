package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// migrator is the per-driver bookkeeping used by runIncremental.
type migrator interface {
	EnsureTable(ctx context.Context) error
	Applied(ctx context.Context, name string) (bool, error)
	Exec(ctx context.Context, sql string) error
	Record(ctx context.Context, name string) error
}

type pgMigrator struct {
	pool *pgxpool.Pool
}

func (m *pgMigrator) EnsureTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (m *pgMigrator) Applied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	return exists, err
}

func (m *pgMigrator) Exec(ctx context.Context, sql string) error {
	_, err := m.pool.Exec(ctx, sql)
	return err
}

func (m *pgMigrator) Record(ctx context.Context, name string) error {
	_, err := m.pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name)
	return err
}

type mysqlMigrator struct {
	db *sqlx.DB
}

func (m *mysqlMigrator) EnsureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name VARCHAR(255) NOT NULL PRIMARY KEY,
		applied_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
	)`)
	return err
}

func (m *mysqlMigrator) Applied(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := m.db.GetContext(ctx, &exists, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = ?)", name)
	return exists, err
}

func (m *mysqlMigrator) Exec(ctx context.Context, sql string) error {
	_, err := m.db.ExecContext(ctx, sql)
	return err
}

func (m *mysqlMigrator) Record(ctx context.Context, name string) error {
	_, err := m.db.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES (?)", name)
	return err
}
