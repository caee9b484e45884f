package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mailarchive/beautifier/internal/common"
	"github.com/ternarybob/arbor"
)

// APIHandler serves the small set of JSON endpoints a runnable instance
// needs beyond thread rendering: version, health, and config introspection.
type APIHandler struct {
	logger arbor.ILogger
	config *common.Config
}

// NewAPIHandler builds an APIHandler bound to the running configuration.
func NewAPIHandler(config *common.Config, logger arbor.ILogger) *APIHandler {
	return &APIHandler{logger: logger, config: config}
}

// VersionHandler returns version information.
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"git_commit": common.GitCommit,
	})
}

// HealthHandler returns health check status.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// ConfigHandler returns the subset of configuration safe to expose over
// HTTP (no IMAP credentials).
func (h *APIHandler) ConfigHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"environment": h.config.Environment,
		"archive": map[string]interface{}{
			"host":          h.config.Archive.Host,
			"list":          h.config.Archive.List,
			"rewrite_links": h.config.Archive.RewriteLinks,
		},
		"digest": map[string]string{
			"schedule": h.config.Digest.Schedule,
		},
	})
}

// NotFoundHandler handles 404 errors with a JSON response.
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   "Not Found",
		"path":    r.URL.Path,
		"message": "The requested endpoint does not exist",
	})
}
