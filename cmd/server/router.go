package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/powerdealer-api/internal/api"
	"github.com/phrazzld/powerdealer-api/internal/api/middleware"
	"github.com/phrazzld/powerdealer-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Every route is served both at the root and under /api, with or without a
// trailing slash.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.NewTraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(middleware.Recoverer)

	// Registered before the sub-routers so Route/Mount inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "", nil)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondSuccess(w, r, http.StatusOK, "OK", map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", app.metrics.Handler())

	authHandler := api.NewAuthHandler(app.accountService)
	businessHandler := api.NewBusinessHandler(app.businessService)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	routes := func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/auth/me", authHandler.Me)
			r.Get("/business", businessHandler.GetBusiness)
			r.Put("/business", businessHandler.UpdateBusiness)
			r.Patch("/business", businessHandler.UpdateBusiness)
		})
	}

	routes(r)
	r.Route("/api", func(r chi.Router) {
		routes(r)
		// Path used by the web frontend.
		r.Post("/token/refresh", authHandler.RefreshToken)
	})

	return r
}
