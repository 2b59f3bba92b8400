// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER and STORAGE_DRIVER.
const (
	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	StorageDriverS3    = "s3"
	StorageDriverMinio = "minio"
	StorageDriverLocal = "local"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port           string
	AppEnv         string
	MaxBodyBytes   int64
	MaxImagePixels int64

	DB      DBConfig
	Storage StorageConfig
	Log     LogConfig
	Limit   RateLimitConfig
}

// DBConfig selects the relational store.
type DBConfig struct {
	Driver string
	URL    string // file path for sqlite, connection URL for postgres
}

// StorageConfig describes the object store images are uploaded to.
type StorageConfig struct {
	Driver        string
	BucketName    string
	Region        string
	PublicBaseURL string // e.g. "https://songs.s3.us-east-1.amazonaws.com"
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	UsePathStyle  bool
	LocalDir      string
	StagingDir    string
	UploadTimeout time.Duration
}

// LogConfig controls zap output and file rotation.
type LogConfig struct {
	Level      string
	Format     string // json or console
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// RateLimitConfig bounds image uploads per client. Uploads == 0 disables it.
type RateLimitConfig struct {
	Uploads   int
	Window    time.Duration
	RedisAddr string
}

// Load reads configuration from envFile (if present) and environment variables.
// An empty envFile means ".env".
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("load env file %q: %w", envFile, err)
	}

	p := &parser{}
	cfg := &Config{
		Port:           getEnv("PORT", "8000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		MaxBodyBytes:   p.getInt64("MAX_BODY_BYTES", 10<<20),
		MaxImagePixels: p.getInt64("MAX_IMAGE_PIXELS", 25_000_000),

		DB: DBConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DBDriverSQLite)),
			URL:    getEnv("DATABASE_URL", "song.db"),
		},

		Storage: StorageConfig{
			Driver:        strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverS3)),
			BucketName:    os.Getenv("S3_BUCKET_NAME"),
			Region:        getEnv("S3_REGION", "us-east-1"),
			PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
			Endpoint:      os.Getenv("S3_ENDPOINT"),
			AccessKey:     os.Getenv("S3_ACCESS_KEY"),
			SecretKey:     os.Getenv("S3_SECRET_KEY"),
			UseSSL:        p.getBool("S3_USE_SSL", true),
			UsePathStyle:  p.getBool("S3_USE_PATH_STYLE", false),
			LocalDir:      getEnv("STORAGE_LOCAL_DIR", "./uploads"),
			StagingDir:    getEnv("STORAGE_STAGING_DIR", filepath.Join(os.TempDir(), "songshare-staging")),
			UploadTimeout: p.getDuration("STORAGE_UPLOAD_TIMEOUT", 30*time.Second),
		},

		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     os.Getenv("LOG_FORMAT"),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  p.getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: p.getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: p.getInt("LOG_MAX_AGE_DAYS", 28),
		},

		Limit: RateLimitConfig{
			Uploads:   p.getInt("UPLOAD_RATE_LIMIT", 0),
			Window:    p.getDuration("UPLOAD_RATE_WINDOW", time.Minute),
			RedisAddr: os.Getenv("REDIS_ADDR"),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
		if cfg.IsProduction() {
			cfg.Log.Format = "json"
		}
	}
	cfg.Storage.PublicBaseURL = cfg.Storage.publicBase()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.URL == "" {
		return errors.New("DATABASE_URL is required")
	}

	switch c.Storage.Driver {
	case StorageDriverS3, StorageDriverMinio:
		if c.Storage.BucketName == "" {
			return errors.New("S3_BUCKET_NAME is required")
		}
		if c.Storage.Driver == StorageDriverMinio && c.Storage.Endpoint == "" {
			return errors.New("S3_ENDPOINT is required for the minio driver")
		}
	case StorageDriverLocal:
		if c.Storage.LocalDir == "" {
			return errors.New("STORAGE_LOCAL_DIR is required for the local driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.Storage.UploadTimeout <= 0 {
		return errors.New("STORAGE_UPLOAD_TIMEOUT must be positive")
	}
	if c.MaxImagePixels <= 0 {
		return errors.New("MAX_IMAGE_PIXELS must be positive")
	}
	if c.Limit.Uploads < 0 {
		return errors.New("UPLOAD_RATE_LIMIT must not be negative")
	}
	return nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// publicBase returns the configured public base URL, or derives the default
// virtual-hosted style AWS URL for the bucket.
func (s StorageConfig) publicBase() string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/")
	}
	switch s.Driver {
	case StorageDriverS3:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.BucketName, s.Region)
	case StorageDriverMinio:
		scheme := "http"
		if s.UseSSL {
			scheme = "https"
		}
		return fmt.Sprintf("%s://%s/%s", scheme, s.Endpoint, s.BucketName)
	default:
		return "/files"
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser accumulates the first conversion error so Load can report it once.
type parser struct {
	err error
}

func (p *parser) getInt(key string, fallback int) int {
	return int(p.getInt64(key, int64(fallback)))
}

func (p *parser) getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" || p.err != nil {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return fallback
	}
	return n
}

func (p *parser) getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" || p.err != nil {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return fallback
	}
	return b
}

func (p *parser) getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" || p.err != nil {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("parse %s: %w", key, err)
		return fallback
	}
	return d
}
