package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsDerivePublicBaseURL(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")
	t.Setenv("S3_REGION", "eu-west-1")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, DBDriverSQLite, cfg.DB.Driver)
	require.Equal(t, StorageDriverS3, cfg.Storage.Driver)
	require.Equal(t, "https://songs.s3.eu-west-1.amazonaws.com", cfg.Storage.PublicBaseURL)
	require.Equal(t, 30*time.Second, cfg.Storage.UploadTimeout)
	require.Zero(t, cfg.Limit.Uploads)
}

func TestLoad_ExplicitPublicBaseURLIsTrimmed(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com", cfg.Storage.PublicBaseURL)
}

func TestLoad_RequiresBucketForS3(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "")
	t.Setenv("STORAGE_DRIVER", "s3")

	_, err := Load("")
	require.ErrorContains(t, err, "S3_BUCKET_NAME")
}

func TestLoad_RejectsUnknownDrivers(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	require.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoad_BadDurationFails(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")
	t.Setenv("STORAGE_UPLOAD_TIMEOUT", "soon")

	_, err := Load("")
	require.ErrorContains(t, err, "STORAGE_UPLOAD_TIMEOUT")
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORAGE_DRIVER=local\nSTORAGE_LOCAL_DIR=/tmp/songshare\nPORT=9999\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("STORAGE_DRIVER")
		os.Unsetenv("STORAGE_LOCAL_DIR")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "9999", cfg.Port)
	require.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	require.Equal(t, "/files", cfg.Storage.PublicBaseURL)
}

func TestLoad_MissingEnvFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoad_ProductionDefaultsToJSONLogs(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.False(t, cfg.IsProduction())
	require.Equal(t, "console", cfg.Log.Format)

	t.Setenv("APP_ENV", "production")
	cfg, err = Load("")
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "json", cfg.Log.Format)

	t.Setenv("LOG_FORMAT", "console")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_MaxImagePixels(t *testing.T) {
	t.Setenv("S3_BUCKET_NAME", "songs")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, int64(25_000_000), cfg.MaxImagePixels)

	t.Setenv("MAX_IMAGE_PIXELS", "0")
	_, err = Load("")
	require.ErrorContains(t, err, "MAX_IMAGE_PIXELS")
}
