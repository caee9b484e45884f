// -----------------------------------------------------------------------
// Last Modified: Thursday, 9th October 2025 8:53:55 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Thread rendering
	mux.HandleFunc("/thread/", s.app.ThreadHandler.ThreadPageHandler)

	// WebSocket route - digest-changed push notifications
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/config", s.app.APIHandler.ConfigHandler)
	mux.HandleFunc("/api/shutdown", s.ShutdownHandler) // graceful shutdown endpoint (dev mode)

	// API routes - Digest
	mux.HandleFunc("/api/digest/trigger", s.handleDigestTrigger)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleDigestTrigger runs an out-of-schedule digest pass immediately.
func (s *Server) handleDigestTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.app.DigestJob.RunNow()

	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte(`{"status":"triggered"}`))
}
