package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/camelcase/task-api/internal/api"
	"github.com/camelcase/task-api/internal/api/graphql"
	"github.com/camelcase/task-api/internal/api/shared"
	apiMiddleware "github.com/camelcase/task-api/internal/api/middleware"
)

// setupRouter creates the router with every route and middleware.
// The authentication gate runs for all requests and lets its allow-list through.
func (app *application) setupRouter() (http.Handler, error) {
	docsHandler, err := api.NewDocsHandler()
	if err != nil {
		return nil, err
	}
	graphqlHandler, err := graphql.NewHandler(app.taskService, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL handler: %w", err)
	}
	authHandler := api.NewAuthHandler(app.adminAccount, app.tokenService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	authGate := apiMiddleware.NewAuthMiddleware(app.tokenService, app.adminAccount)
	metrics := apiMiddleware.NewMetrics(app.registry)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Handler)
	r.Use(authGate.Authenticate)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/graphiql", http.StatusFound)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{Registry: app.registry}))

	r.Get("/v3/api-docs", docsHandler.JSON)
	r.Get("/v3/api-docs.yaml", docsHandler.YAML)

	r.Post("/api/auth/login", authHandler.Login)
	r.Route("/tasks", taskHandler.Routes)

	r.Method(http.MethodPost, "/graphql", graphqlHandler)
	r.Get("/graphql/schema", graphqlHandler.Schema)
	r.Get("/graphiql", graphqlHandler.GraphiQL)

	return r, nil
}
