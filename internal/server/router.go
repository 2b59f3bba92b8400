// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/songshare/service/internal/asset"
	appMiddleware "github.com/songshare/service/internal/middleware"
	"github.com/songshare/service/internal/response"
	"github.com/songshare/service/internal/song"
	"github.com/songshare/service/internal/user"

	_ "github.com/songshare/service/docs/swagger"
)

// Deps are the handlers and collaborators the router needs.
type Deps struct {
	Logger *zap.Logger
	Users  *user.Handler
	Songs  *song.Handler
	Assets *asset.Handler

	// UploadLimiter throttles image uploads when non-nil.
	UploadLimiter appMiddleware.Limiter
	// FilesDir is served under /files/ when set (local storage driver).
	FilesDir     string
	MaxBodyBytes int64
}

// NewRouter builds the chi router with every route registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(d.Logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	if d.MaxBodyBytes > 0 {
		r.Use(chiMiddleware.RequestSize(d.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route not found")
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if d.FilesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(d.FilesDir))))
	}

	r.Get("/", d.Songs.List)
	r.Get("/music/", d.Songs.List)

	r.Post("/create/user/", d.Users.Create)
	r.Get("/get/user/{id:[0-9]+}/", d.Users.Get)
	r.Delete("/delete/user/{id:[0-9]+}/", d.Users.Delete)

	r.Post("/create/song/{user_id:[0-9]+}/", d.Songs.Create)
	r.Get("/get/song/{id:[0-9]+}/", d.Songs.Get)
	r.Delete("/delete/song/{id:[0-9]+}/", d.Songs.Delete)

	var upload chi.Router = r
	if d.UploadLimiter != nil {
		upload = r.With(appMiddleware.RateLimit(d.UploadLimiter))
	}
	upload.Post("/image/{song_id:[0-9]+}/song/", d.Assets.Create)

	return r
}
