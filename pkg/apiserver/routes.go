package apiserver

import (
	"encoding/json"
	"net/http"
)

// registerRoutes wires all routes into the server mux.
func (s *Server) registerRoutes() {
	// Health checks
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /readyz", s.handleReadyz)

	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.HandleFunc("GET /api/version", s.handleVersion)

	// Customers
	s.mux.HandleFunc("GET /api/customers", s.customers.handleList)
	s.mux.HandleFunc("POST /api/customers", s.customers.handleCreate)
	s.mux.HandleFunc("GET /api/customers/{id}", s.customers.handleGet)
	s.mux.HandleFunc("PUT /api/customers/{id}", s.customers.handleUpdate)
	s.mux.HandleFunc("DELETE /api/customers/{id}", s.customers.handleDelete)

	// Products
	s.mux.HandleFunc("GET /api/products", s.products.handleList)
	s.mux.HandleFunc("POST /api/products", s.products.handleCreate)
	s.mux.HandleFunc("GET /api/products/{id}", s.products.handleGet)
	s.mux.HandleFunc("PUT /api/products/{id}", s.products.handleUpdate)
	s.mux.HandleFunc("DELETE /api/products/{id}", s.products.handleDelete)
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports readiness; it fails while the store is unreachable.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": "bite-api " + s.opts.Version})
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
