package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/bucketcms/service/internal/app"
	"github.com/bucketcms/service/internal/auth"
	appMiddleware "github.com/bucketcms/service/internal/middleware"
	"github.com/bucketcms/service/internal/response"
)

// NewRouter builds the HTTP routes for a.
func NewRouter(a *app.App) http.Handler {
	cfg := a.Config
	h := NewHandler(a)
	authHandler := auth.NewHandler(auth.NewService(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret))

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(a.Log.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	fallbacks(r)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", a.MetricsHandler())

	// Swagger UI at /swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		fallbacks(r)

		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Get("/config/status", h.ConfigStatus)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAuth(cfg.JWTSecret, cfg.AuthEnabled()))

			r.Post("/bucket/create", h.CreateBucket)

			r.Post("/item/create", h.CreateItem)
			r.Get("/item/read", h.ReadItem)
			r.Put("/item/update", h.UpdateItem)
			r.Delete("/item/delete", h.DeleteItem)

			r.Get("/items/read", h.ListItems)
			r.Get("/items/count", h.CountItems)

			r.Get("/collections", h.Collections)
			r.Put("/collections/schema", h.PutSchema)
			r.Get("/collections/schema", h.GetSchema)

			r.Post("/maintenance/reconcile", h.Reconcile)
		})
	})

	return r
}

// fallbacks answers unknown routes and unsupported methods in the JSON error
// format.
func fallbacks(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "route "+r.URL.Path+" not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, r.Method)
	})
}
