// Package db provides database connection and migration utilities.
package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/songshare/service/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// sqlDriverName maps a configured driver to its database/sql driver name.
var sqlDriverName = map[string]string{
	config.DBDriverSQLite:   "sqlite",
	config.DBDriverPostgres: "pgx",
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open connects to the configured store and validates the connection.
func Open(ctx context.Context, cfg config.DBConfig) (*sqlx.DB, error) {
	conn, err := open(cfg)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	zap.L().Info("connected to database", zap.String("driver", cfg.Driver))
	return conn, nil
}

func open(cfg config.DBConfig) (*sqlx.DB, error) {
	name, ok := sqlDriverName[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	dsn := cfg.URL
	if cfg.Driver == config.DBDriverSQLite {
		dsn = sqliteDSN(cfg.URL)
	}

	conn, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Driver == config.DBDriverPostgres {
		conn.SetMaxOpenConns(20)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}
	return conn, nil
}

// sqliteDSN turns a file path into a modernc DSN with foreign keys enforced.
// ON DELETE CASCADE is a no-op in SQLite unless the pragma is set per connection.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// Migrate runs all pending up migrations embedded in the binary.
func Migrate(cfg config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	zap.L().Info("database migrations applied", zap.String("driver", cfg.Driver))
	return nil
}

// MigrateDown rolls back every applied migration.
func MigrateDown(cfg config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("revert migrations: %w", err)
	}
	zap.L().Info("database migrations reverted", zap.String("driver", cfg.Driver))
	return nil
}

// newMigrator opens a dedicated connection that closing the migrator releases.
func newMigrator(cfg config.DBConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("load migration source: %w", err)
	}

	conn, err := open(cfg)
	if err != nil {
		return nil, err
	}

	var target database.Driver
	switch cfg.Driver {
	case config.DBDriverSQLite:
		target, err = sqlitemigrate.WithInstance(conn.DB, &sqlitemigrate.Config{})
	case config.DBDriverPostgres:
		target, err = pgxmigrate.WithInstance(conn.DB, &pgxmigrate.Config{})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, target)
	if err != nil {
		target.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// IsUniqueViolation reports whether err is a unique constraint failure on
// either supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
