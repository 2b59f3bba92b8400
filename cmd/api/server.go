package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/songshare/service/internal/asset"
	"github.com/songshare/service/internal/config"
	"github.com/songshare/service/internal/db"
	appMiddleware "github.com/songshare/service/internal/middleware"
	"github.com/songshare/service/internal/server"
	"github.com/songshare/service/internal/song"
	"github.com/songshare/service/internal/storage"
	"github.com/songshare/service/internal/user"
)

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	conn, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer conn.Close()

	if err := db.Migrate(cfg.DB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("object storage init failed: %w", err)
	}
	uploader, err := storage.NewUploader(store, cfg.Storage.StagingDir, cfg.Storage.UploadTimeout)
	if err != nil {
		return fmt.Errorf("uploader init failed: %w", err)
	}

	limiter, closeLimiter, err := uploadLimiter(ctx, cfg.Limit)
	if err != nil {
		return err
	}
	defer closeLimiter()

	// Wire dependencies: repository → service → handler
	userRepo := user.NewRepository(conn)
	songRepo := song.NewRepository(conn)
	assetSvc := asset.NewService(asset.NewRepository(conn), songRepo, uploader, cfg.MaxImagePixels)
	songSvc := song.NewService(songRepo, userRepo, assetSvc)
	userSvc := user.NewService(userRepo, songSvc)

	deps := server.Deps{
		Logger:        logger,
		Users:         user.NewHandler(userSvc),
		Songs:         song.NewHandler(songSvc),
		Assets:        asset.NewHandler(assetSvc),
		UploadLimiter: limiter,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	}
	if local, ok := store.(*storage.LocalStorage); ok {
		deps.FilesDir = local.Dir()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Storage.UploadTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	serveErr := make(chan error, 1)

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		logger.Info("swagger UI", zap.String("url", "http://localhost:"+cfg.Port+"/swagger/index.html"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// uploadLimiter returns nil when upload rate limiting is disabled.
func uploadLimiter(ctx context.Context, cfg config.RateLimitConfig) (appMiddleware.Limiter, func(), error) {
	if cfg.Uploads == 0 {
		return nil, func() {}, nil
	}
	if cfg.RedisAddr == "" {
		return appMiddleware.NewMemoryLimiter(cfg.Uploads, cfg.Window), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return appMiddleware.NewRedisLimiter(client, cfg.Uploads, cfg.Window), func() { _ = client.Close() }, nil
}
