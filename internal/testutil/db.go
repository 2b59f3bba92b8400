// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/songshare/service/internal/config"
	"github.com/songshare/service/internal/db"
)

// OpenTestDB returns a migrated SQLite database in a per-test temp dir.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		URL:    filepath.Join(t.TempDir(), "test.db"),
	}
	return open(t, cfg)
}

// OpenPostgresDB connects to TEST_DATABASE_URL, skipping the test when unset.
func OpenPostgresDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres test")
	}
	conn := open(t, config.DBConfig{Driver: config.DBDriverPostgres, URL: url})
	t.Cleanup(func() {
		_, _ = conn.Exec(`TRUNCATE assets, song, "user" RESTART IDENTITY CASCADE`)
	})
	return conn
}

func open(t *testing.T, cfg config.DBConfig) *sqlx.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(cfg); err != nil {
		conn.Close()
		t.Fatalf("migrations: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
