package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/user-api/internal/api"
	apiMiddleware "github.com/phrazzld/user-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.accessLog.Middleware)

	userHandler := api.NewUserHandler(app.userService, app.logger)

	api.RegisterUserRoutes(r, app.docs, userHandler)
	api.RegisterDocsRoutes(r, app.docs)

	r.Get("/health", userHandler.Health)

	return r
}
