package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations for DATABASE_DRIVER
  fresh       drop all tables, then apply every migration in order`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd != "" && cmd != "fresh" {
		usage()
	}

	if cfg.DatabaseDriver == repository.DriverMemory {
		slog.Info("memory driver has no schema, nothing to migrate")
		return
	}

	ctx := context.Background()
	m, closeDB, err := openMigrator(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "driver", cfg.DatabaseDriver, "error", err)
	}
	defer closeDB()

	dir := findMigrationDir(cfg.DatabaseDriver)

	if cmd == "fresh" {
		if err := runDropAll(ctx, m, dir); err != nil {
			closeDB()
			logging.Fatal("drop all failed", "error", err)
		}
	}
	if err := runIncremental(ctx, m, dir); err != nil {
		closeDB()
		logging.Fatal("migration failed", "error", err)
	}
}

func openMigrator(ctx context.Context, driver, dsn string) (migrator, func(), error) {
	switch driver {
	case repository.DriverPostgres:
		pool, err := repository.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return &pgMigrator{pool: pool}, pool.Close, nil
	case repository.DriverMySQL:
		// Migration files hold several statements each.
		mc, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		mc.MultiStatements = true
		db, err := repository.OpenMySQL(ctx, mc.FormatDSN())
		if err != nil {
			return nil, nil, err
		}
		return &mysqlMigrator{db: db}, func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func findMigrationDir(driver string) string {
	dir := filepath.Join("migrations", driver)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = filepath.Join("..", "migrations", driver)
	}
	return dir
}

// collectUpFiles returns the .up.sql file names in dir, sorted.
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// runIncremental applies every migration not yet recorded in schema_migrations.
func runIncremental(ctx context.Context, m migrator, dir string) error {
	if err := m.EnsureTable(ctx); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	upFiles, err := collectUpFiles(dir)
	if err != nil {
		return err
	}

	applied := 0
	for i, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")

		done, err := m.Applied(ctx, name)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if done {
			continue
		}

		sql, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := m.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if err := m.Record(ctx, name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

func runDropAll(ctx context.Context, m migrator, dir string) error {
	slog.Info("dropping all tables")
	sql, err := os.ReadFile(filepath.Join(dir, "000_drop_all.sql"))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("000_drop_all.sql not found in %s", dir)
	}
	if err != nil {
		return err
	}
	if err := m.Exec(ctx, string(sql)); err != nil {
		return err
	}
	slog.Info("all tables dropped")
	return nil
}
