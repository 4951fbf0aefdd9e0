package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"minutes-tracker/internal/config"
	"minutes-tracker/internal/handlers"
	"minutes-tracker/internal/middleware"
	"minutes-tracker/internal/repo"
	"minutes-tracker/internal/service"
)

// newRouter builds the full HTTP handler chain. Split from main so the
// integration test can drive the router against a mocked database.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	userService := service.NewUserService(userRepo)
	workService := service.NewWorkService(database)

	authHandler := &handlers.AuthHandler{
		Users:  userService,
		Secret: []byte(cfg.JWTSecret),
		Expire: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	userHandler := &handlers.UserHandler{Users: userService}
	workHandler := &handlers.WorkHandler{Works: workService}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(false))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Public: login and registration, rate limited per IP.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/user", userHandler.CreateUser)
	})

	// Everything else runs as the authenticated principal.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Principal([]byte(cfg.JWTSecret)))
		r.Get("/user", userHandler.GetUserInfo)
		r.Put("/user", userHandler.UpdateMaxMinutes)
		r.Get("/work", workHandler.SearchWorks)
		r.Post("/work", workHandler.SaveWorks)
		r.Delete("/work", workHandler.DeleteWorks)
	})

	return r
}
