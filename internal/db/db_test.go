package db_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/songshare/service/internal/config"
	"github.com/songshare/service/internal/db"
	"github.com/songshare/service/internal/testutil"
)

func seed(t *testing.T, conn *sqlx.DB) (userID, songID int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, conn.GetContext(ctx, &userID,
		conn.Rebind(`INSERT INTO "user" (name, class_year) VALUES (?, ?) RETURNING id`), "Alice", "2025"))
	require.NoError(t, conn.GetContext(ctx, &songID,
		conn.Rebind(`INSERT INTO song (name, user_id) VALUES (?, ?) RETURNING id`), "Blue", userID))
	_, err := conn.ExecContext(ctx,
		conn.Rebind(`INSERT INTO assets (base_url, salt, extension, width, height, created_at, song_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		"https://b.example.com", "ABCDEFGHIJKLMNOP", "png", 2, 3, time.Now().UTC(), songID)
	require.NoError(t, err)
	return userID, songID
}

func count(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func TestCascade_DeleteUserRemovesSongsAndAssets(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	userID, _ := seed(t, conn)

	_, err := conn.Exec(conn.Rebind(`DELETE FROM "user" WHERE id = ?`), userID)
	require.NoError(t, err)

	require.Zero(t, count(t, conn, "song"))
	require.Zero(t, count(t, conn, "assets"))
}

func TestCascade_DeleteSongRemovesAssets(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	_, songID := seed(t, conn)

	_, err := conn.Exec(conn.Rebind(`DELETE FROM song WHERE id = ?`), songID)
	require.NoError(t, err)

	require.Equal(t, 1, count(t, conn, `"user"`))
	require.Zero(t, count(t, conn, "assets"))
}

func TestAssets_RejectsUnknownExtension(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	_, songID := seed(t, conn)

	_, err := conn.Exec(conn.Rebind(`INSERT INTO assets (base_url, salt, extension, width, height, created_at, song_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`), "b", "QRSTUVWXYZ012345", "bmp", 1, 1, time.Now().UTC(), songID)
	require.Error(t, err)
}

func TestIsUniqueViolation_DuplicateSalt(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	_, songID := seed(t, conn)

	_, err := conn.Exec(conn.Rebind(`INSERT INTO assets (base_url, salt, extension, width, height, created_at, song_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`), "b", "ABCDEFGHIJKLMNOP", "gif", 1, 1, time.Now().UTC(), songID)
	require.Error(t, err)
	require.True(t, db.IsUniqueViolation(err))
	require.False(t, db.IsUniqueViolation(context.Canceled))
}

func TestMigrate_IsIdempotentAndReversible(t *testing.T) {
	cfg := config.DBConfig{Driver: config.DBDriverSQLite, URL: filepath.Join(t.TempDir(), "m.db")}
	require.NoError(t, db.Migrate(cfg))
	require.NoError(t, db.Migrate(cfg))
	require.NoError(t, db.MigrateDown(cfg))

	conn, err := db.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'assets'`))
	require.Zero(t, n)
}

func TestCascade_Postgres(t *testing.T) {
	conn := testutil.OpenPostgresDB(t)
	userID, _ := seed(t, conn)

	_, err := conn.Exec(conn.Rebind(`DELETE FROM "user" WHERE id = ?`), userID)
	require.NoError(t, err)
	require.Zero(t, count(t, conn, "assets"))
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := db.Open(context.Background(), config.DBConfig{Driver: "mysql", URL: "x"})
	require.Error(t, err)
}
