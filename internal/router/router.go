package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"buildboard-api/internal/handler"
	"buildboard-api/internal/middleware"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler        *handler.Handler
	CatalogHandler *handler.CatalogHandler
	RequestHandler *handler.RequestHandler
	BoardHandler   *handler.BoardHandler
	AdminHandler   *handler.AdminHandler
	Logger         logrus.FieldLogger
	AllowedOrigins []string
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader, middleware.RoleHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))

	if cfg.Handler != nil {
		r.Get("/api/status", cfg.Handler.Status)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		if cfg.AdminHandler != nil {
			r.Get("/admin/stats", cfg.AdminHandler.GetStats)
		}

		// Board routes act in the caller's view
		r.Group(func(r chi.Router) {
			r.Use(middleware.SelectRole)

			if cfg.CatalogHandler != nil {
				r.Get("/catalog/{article_number}", cfg.CatalogHandler.Lookup)
			}

			if cfg.RequestHandler != nil {
				r.Route("/requests", func(r chi.Router) {
					r.Get("/", cfg.RequestHandler.List)
					r.Post("/", cfg.RequestHandler.Submit)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", cfg.RequestHandler.Get)

						// Builder view only
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequireRole(middleware.RoleBuilder))
							r.Put("/status", cfg.RequestHandler.SetStatus)
							r.Post("/advance", cfg.RequestHandler.Advance)
							r.Post("/flags/{flag}", cfg.RequestHandler.ToggleFlag)
						})
					})
				})
			}

			if cfg.BoardHandler != nil {
				r.Get("/board", cfg.BoardHandler.Board)
				r.Get("/capacity", cfg.BoardHandler.Capacity)
			}
		})
	})

	return r
}
