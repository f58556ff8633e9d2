package api

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"gopkg.in/yaml.v3"

	"github.com/camelcase/task-api/internal/platform/logger"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// DocsHandler serves the OpenAPI description of the REST surface.
type DocsHandler struct {
	jsonDoc []byte
}

// NewDocsHandler converts the embedded YAML document to JSON once.
func NewDocsHandler() (*DocsHandler, error) {
	jsonDoc, err := yamlToJSON(openAPIYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI document: %w", err)
	}
	return &DocsHandler{jsonDoc: jsonDoc}, nil
}

// JSON handles GET /v3/api-docs.
func (h *DocsHandler) JSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(h.jsonDoc); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).Error("Failed to write OpenAPI document", "error", err)
	}
}

// YAML handles GET /v3/api-docs.yaml.
func (h *DocsHandler) YAML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(openAPIYAML); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).Error("Failed to write OpenAPI document", "error", err)
	}
}

func yamlToJSON(in []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(in, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(normalizeYAML(doc))
}

// normalizeYAML turns non-string mapping keys into strings so the tree can be
// encoded as JSON.
func normalizeYAML(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		for k, child := range node {
			node[k] = normalizeYAML(child)
		}
		return node
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = normalizeYAML(child)
		}
		return out
	case []interface{}:
		for i, child := range node {
			node[i] = normalizeYAML(child)
		}
		return node
	default:
		return v
	}
}
