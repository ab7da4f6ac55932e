package routes

import (
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/sivaram/calc-admin/api/http"
	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/metrics"
	"github.com/sivaram/calc-admin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (*mux.Router, *metrics.Collector) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := metrics.New("calc_admin")
	r := mux.NewRouter()
	RegisterRoutes(r, http.NewHandler(catalog.New(st, logger), m), m, logger)
	return r, m
}

func TestRoutes(t *testing.T) {
	r, _ := newServer(t)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/healthz", "", 200},
		{"GET", "/api/nodes", "", 200},
		{"POST", "/api/nodes", `{"name":"a"}`, 201},
		{"GET", "/api/nodes/missing", "", 404},
		{"GET", "/api/formulars", "", 200},
		{"GET", "/api/formulars/missing/nodes", "", 404},
		{"PUT", "/api/formulars/missing/nodes/reorder", `{"nodeOrder":[]}`, 404},
		{"DELETE", "/api/formulars/missing/nodes/n1", "", 404},
		{"GET", "/api/calculations", "", 200},
		{"PUT", "/api/calculations/missing/formulars/reorder", `{"formularOrder":[]}`, 404},
		{"PATCH", "/api/nodes", "", 405},
		{"POST", "/api/nodes/abc", "", 405},
		{"GET", "/api/formulars/f1/nodes/reorder", "", 405},
		{"POST", "/healthz", "", 405},
		{"GET", "/api/unknown", "", 404},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestMetricsRouteCountsRequests(t *testing.T) {
	r, _ := newServer(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/nodes", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/nodes/abc", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `calc_admin_http_requests_total{method="GET",route="/api/nodes",status="200"} 1`)
	assert.Contains(t, body, `calc_admin_http_requests_total{method="GET",route="/api/nodes/{id}",status="404"} 1`)
}

func TestPanicIsLoggedAndCounted(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	logger, hook := test.NewNullLogger()
	m := metrics.New("calc_admin")
	r := mux.NewRouter()
	RegisterRoutes(r, http.NewHandler(catalog.New(st, logger), m), m, logger)
	r.HandleFunc("/boom", func(nethttp.ResponseWriter, *nethttp.Request) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, 500, w.Code)

	var handled *logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Message == "Handled request" {
			handled = e
		}
	}
	require.NotNil(t, handled)
	assert.Equal(t, 500, handled.Data["status"])
	assert.Equal(t, "/boom", handled.Data["route"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), `calc_admin_http_requests_total{method="GET",route="/boom",status="500"} 1`)
}

func TestMethodNotAllowedIsCounted(t *testing.T) {
	r, _ := newServer(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("PATCH", "/api/nodes", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	counted := false
	for _, line := range strings.Split(w.Body.String(), "\n") {
		if strings.HasPrefix(line, "calc_admin_http_requests_total{") &&
			strings.Contains(line, `method="PATCH"`) && strings.Contains(line, `status="405"`) {
			counted = strings.HasSuffix(line, " 1")
		}
	}
	assert.True(t, counted, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newServer(t)
	h := WithCORS(r, []string{"http://localhost:5173"})

	req := httptest.NewRequest("OPTIONS", "/api/nodes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/api/nodes", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
