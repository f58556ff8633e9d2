package graphql

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/camelcase/task-api/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// MaxQueryDepth bounds nesting in incoming queries.
const MaxQueryDepth = 10

// Handler serves the GraphQL endpoint, its schema and the GraphiQL page.
type Handler struct {
	schema *gql.Schema
	query  http.Handler
	logger *slog.Logger
}

// NewHandler parses the schema against the resolvers for tasks.
func NewHandler(tasks service.TaskService, logger *slog.Logger) (*Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "graphql"))

	schema, err := gql.ParseSchema(schemaSDL, NewResolver(tasks, logger),
		gql.MaxDepth(MaxQueryDepth),
		gql.Logger(panicLogger{logger: logger}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	return &Handler{
		schema: schema,
		query:  &relay.Handler{Schema: schema},
		logger: logger,
	}, nil
}

// ServeHTTP handles POST /graphql.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.query.ServeHTTP(w, r)
}

// Schema handles GET /graphql/schema with the SDL document.
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(schemaSDL)); err != nil {
		h.logger.Error("Failed to write GraphQL schema response", "error", err)
	}
}

// GraphiQL handles GET /graphiql with the in-browser playground.
func (h *Handler) GraphiQL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(graphiqlPage); err != nil {
		h.logger.Error("Failed to write GraphiQL page", "error", err)
	}
}

var graphiqlPage = []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Task API GraphiQL</title>
  <link rel="stylesheet" href="https://unpkg.com/graphiql@3/graphiql.min.css" />
  <style>body { margin: 0; height: 100vh; } #graphiql { height: 100vh; }</style>
</head>
<body>
  <div id="graphiql">Loading...</div>
  <script crossorigin src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
  <script crossorigin src="https://unpkg.com/graphiql@3/graphiql.min.js"></script>
  <script>
    const token = window.localStorage.getItem("taskapi.token");
    const fetcher = GraphiQL.createFetcher({
      url: "/graphql",
      headers: token ? { Authorization: "Bearer " + token } : {},
    });
    ReactDOM.createRoot(document.getElementById("graphiql"))
      .render(React.createElement(GraphiQL, { fetcher: fetcher }));
  </script>
</body>
</html>
`)
