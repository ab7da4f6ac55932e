package routes

import (
	nethttp "net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/api/http"
	"github.com/sivaram/calc-admin/internal/metrics"
)

// RegisterRoutes registers all routes with the given router and handler
func RegisterRoutes(r *mux.Router, handler *http.Handler, m *metrics.Collector, logger *logrus.Logger) {
	r.Use(http.Instrument(logger, m), http.Recover(logger))

	// Router middleware does not run on method mismatches.
	notAllowed := http.Instrument(logger, m)(nethttp.HandlerFunc(handler.MethodNotAllowed))
	r.MethodNotAllowedHandler = notAllowed

	r.HandleFunc("/healthz", handler.Health).Methods("GET")
	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.MethodNotAllowedHandler = notAllowed

	api.HandleFunc("/nodes", handler.ListNodes).Methods("GET")
	api.HandleFunc("/nodes", handler.CreateNode).Methods("POST")
	api.HandleFunc("/nodes/{id}", handler.GetNode).Methods("GET")
	api.HandleFunc("/nodes/{id}", handler.UpdateNode).Methods("PUT")
	api.HandleFunc("/nodes/{id}", handler.DeleteNode).Methods("DELETE")

	api.HandleFunc("/formulars", handler.ListFormulars).Methods("GET")
	api.HandleFunc("/formulars", handler.CreateFormular).Methods("POST")
	api.HandleFunc("/formulars/{id}", handler.GetFormular).Methods("GET")
	api.HandleFunc("/formulars/{id}", handler.UpdateFormular).Methods("PUT")
	api.HandleFunc("/formulars/{id}", handler.DeleteFormular).Methods("DELETE")
	api.HandleFunc("/formulars/{id}/nodes", handler.ListFormularNodes).Methods("GET")
	api.HandleFunc("/formulars/{id}/nodes", handler.AddFormularNode).Methods("POST")
	api.HandleFunc("/formulars/{id}/nodes/reorder", handler.ReorderFormularNodes).Methods("PUT")
	api.HandleFunc("/formulars/{id}/nodes/{nodeId}", handler.RemoveFormularNode).Methods("DELETE")

	api.HandleFunc("/calculations", handler.ListCalculations).Methods("GET")
	api.HandleFunc("/calculations", handler.CreateCalculation).Methods("POST")
	api.HandleFunc("/calculations/{id}", handler.GetCalculation).Methods("GET")
	api.HandleFunc("/calculations/{id}", handler.UpdateCalculation).Methods("PUT")
	api.HandleFunc("/calculations/{id}", handler.DeleteCalculation).Methods("DELETE")
	api.HandleFunc("/calculations/{id}/formulars", handler.ListCalculationFormulars).Methods("GET")
	api.HandleFunc("/calculations/{id}/formulars", handler.AddCalculationFormular).Methods("POST")
	api.HandleFunc("/calculations/{id}/formulars/reorder", handler.ReorderCalculationFormulars).Methods("PUT")
	api.HandleFunc("/calculations/{id}/formulars/{formularId}", handler.RemoveCalculationFormular).Methods("DELETE")
}

// WithCORS wraps the router so browser clients on the allowed origins can
// call the API. Preflight requests never reach the router.
func WithCORS(h nethttp.Handler, allowedOrigins []string) nethttp.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})(h)
}
