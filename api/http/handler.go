package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/metrics"
)

type Handler struct {
	catalog *catalog.Catalog
	metrics *metrics.Collector
}

func NewHandler(c *catalog.Catalog, m *metrics.Collector) *Handler {
	return &Handler{catalog: c, metrics: m}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// MethodNotAllowed answers requests whose path is routed but whose method is not.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// writeError maps catalog errors onto HTTP status codes.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, catalog.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.catalog.Logger().Errorf("Request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decode reads a JSON body into v and validates it. It writes the 400
// response itself and reports false on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return false
	}
	if err := validateStruct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) mutated(entity, operation string) {
	if h.metrics != nil {
		h.metrics.Mutation(entity, operation)
	}
}
