package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenMySQL opens a sqlx handle on a MySQL DSN. parseTime is forced on so
// DATETIME columns scan into time.Time.
func OpenMySQL(ctx context.Context, dsn string) (*sqlx.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	db, err := sqlx.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Open connects the store selected by driver. The returned close func
// releases the underlying connections.
func Open(ctx context.Context, driver, dsn string) (Store, func(), error) {
	switch driver {
	case DriverPostgres:
		pool, err := NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return NewPgContactRepository(pool), pool.Close, nil
	case DriverMySQL:
		db, err := OpenMySQL(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mysql: %w", err)
		}
		return NewSQLContactRepository(db), func() { _ = db.Close() }, nil
	case DriverMemory:
		return NewMemoryContactRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
