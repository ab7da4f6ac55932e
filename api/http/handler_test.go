package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/metrics"
	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) (*Handler, *metrics.Collector) {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	m := metrics.New("calc_admin_test")
	return NewHandler(catalog.New(st, logger), m), m
}

func jsonRequest(method, target string, v any) *http.Request {
	var body io.Reader = http.NoBody
	if v != nil {
		raw, _ := json.Marshal(v)
		body = bytes.NewReader(raw)
	}
	return httptest.NewRequest(method, target, body)
}

func createNode(t *testing.T, h *Handler, name string) model.Node {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateNode(w, jsonRequest("POST", "/api/nodes", model.CreateNodeInput{Name: name}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var n model.Node
	require.NoError(t, json.NewDecoder(w.Body).Decode(&n))
	return n
}

func createFormular(t *testing.T, h *Handler, name string) model.Formular {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateFormular(w, jsonRequest("POST", "/api/formulars", model.CreateFormularInput{Name: name}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var f model.Formular
	require.NoError(t, json.NewDecoder(w.Body).Decode(&f))
	return f
}

func createCalculation(t *testing.T, h *Handler, name string) model.Calculation {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateCalculation(w, jsonRequest("POST", "/api/calculations", model.CreateCalculationInput{Name: name}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c model.Calculation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&c))
	return c
}

func TestNodeHandlers(t *testing.T) {
	t.Run("Create and list nodes", func(t *testing.T) {
		h, m := setupTest(t)
		createNode(t, h, "alpha")
		createNode(t, h, "beta")

		w := httptest.NewRecorder()
		h.ListNodes(w, httptest.NewRequest("GET", "/api/nodes", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var nodes []model.Node
		require.NoError(t, json.NewDecoder(w.Body).Decode(&nodes))
		require.Len(t, nodes, 2)
		assert.Equal(t, "alpha", nodes[0].Name)
		assert.Equal(t, "beta", nodes[1].Name)

		scrape := httptest.NewRecorder()
		m.Handler().ServeHTTP(scrape, httptest.NewRequest("GET", "/metrics", nil))
		assert.Contains(t, scrape.Body.String(), `calc_admin_test_mutations_total{entity="node",operation="create"} 2`)
	})

	t.Run("Create node with invalid JSON", func(t *testing.T) {
		h, _ := setupTest(t)
		w := httptest.NewRecorder()
		h.CreateNode(w, httptest.NewRequest("POST", "/api/nodes", strings.NewReader("{bad")))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
		if w.Body.String() != "Invalid request payload\n" {
			t.Errorf("Expected 'Invalid request payload', got %s", w.Body.String())
		}
	})

	t.Run("Create node without name", func(t *testing.T) {
		h, _ := setupTest(t)
		w := httptest.NewRecorder()
		h.CreateNode(w, jsonRequest("POST", "/api/nodes", map[string]string{"nodeData": "x"}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "name is required\n", w.Body.String())
	})

	t.Run("Get missing node", func(t *testing.T) {
		h, _ := setupTest(t)
		req := httptest.NewRequest("GET", "/api/nodes/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "missing"})
		w := httptest.NewRecorder()
		h.GetNode(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Update node", func(t *testing.T) {
		h, _ := setupTest(t)
		n := createNode(t, h, "alpha")

		name := "renamed"
		req := jsonRequest("PUT", "/api/nodes/"+n.ID, model.UpdateNodeInput{Name: &name})
		req = mux.SetURLVars(req, map[string]string{"id": n.ID})
		w := httptest.NewRecorder()
		h.UpdateNode(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var got model.Node
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "renamed", got.Name)
	})

	t.Run("Update node with empty name", func(t *testing.T) {
		h, _ := setupTest(t)
		n := createNode(t, h, "alpha")

		req := jsonRequest("PUT", "/api/nodes/"+n.ID, map[string]string{"name": ""})
		req = mux.SetURLVars(req, map[string]string{"id": n.ID})
		w := httptest.NewRecorder()
		h.UpdateNode(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete node", func(t *testing.T) {
		h, _ := setupTest(t)
		n := createNode(t, h, "alpha")

		req := mux.SetURLVars(httptest.NewRequest("DELETE", "/api/nodes/"+n.ID, nil), map[string]string{"id": n.ID})
		w := httptest.NewRecorder()
		h.DeleteNode(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		h.DeleteNode(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFormularNodeHandlers(t *testing.T) {
	h, _ := setupTest(t)
	f := createFormular(t, h, "sum")
	a := createNode(t, h, "a")
	b := createNode(t, h, "b")
	vars := map[string]string{"id": f.ID}

	add := func(nodeID string) *httptest.ResponseRecorder {
		req := mux.SetURLVars(jsonRequest("POST", "/api/formulars/"+f.ID+"/nodes", model.AddNodeInput{NodeID: nodeID}), vars)
		w := httptest.NewRecorder()
		h.AddFormularNode(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, add(a.ID).Code)
	require.Equal(t, http.StatusCreated, add(b.ID).Code)

	t.Run("Duplicate node conflicts", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, add(a.ID).Code)
	})

	t.Run("Unknown node is rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, add("ghost").Code)
	})

	t.Run("Reorder", func(t *testing.T) {
		req := mux.SetURLVars(jsonRequest("PUT", "/api/formulars/"+f.ID+"/nodes/reorder",
			model.ReorderNodesInput{NodeOrder: []string{b.ID, a.ID}}), vars)
		w := httptest.NewRecorder()
		h.ReorderFormularNodes(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var fns []model.FormularNode
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fns))
		require.Len(t, fns, 2)
		assert.Equal(t, b.ID, fns[0].NodeID)
		assert.Equal(t, a.ID, fns[1].NodeID)
		assert.Nil(t, fns[1].NextID)
	})

	t.Run("Reorder with a missing member", func(t *testing.T) {
		req := mux.SetURLVars(jsonRequest("PUT", "/api/formulars/"+f.ID+"/nodes/reorder",
			model.ReorderNodesInput{NodeOrder: []string{a.ID}}), vars)
		w := httptest.NewRecorder()
		h.ReorderFormularNodes(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Remove node", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest("DELETE", "/api/formulars/"+f.ID+"/nodes/"+a.ID, nil),
			map[string]string{"id": f.ID, "nodeId": a.ID})
		w := httptest.NewRecorder()
		h.RemoveFormularNode(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		h.ListFormularNodes(w, mux.SetURLVars(httptest.NewRequest("GET", "/api/formulars/"+f.ID+"/nodes", nil), vars))
		var fns []model.FormularNode
		require.NoError(t, json.NewDecoder(w.Body).Decode(&fns))
		require.Len(t, fns, 1)
		assert.Equal(t, b.ID, fns[0].NodeID)
	})
}

func TestCalculationFormularHandlers(t *testing.T) {
	h, _ := setupTest(t)
	c := createCalculation(t, h, "q1")
	f1 := createFormular(t, h, "f1")
	f2 := createFormular(t, h, "f2")
	vars := map[string]string{"id": c.ID}

	for _, f := range []model.Formular{f1, f2} {
		req := mux.SetURLVars(jsonRequest("POST", "/api/calculations/"+c.ID+"/formulars", model.AddFormularInput{FormularID: f.ID}), vars)
		w := httptest.NewRecorder()
		h.AddCalculationFormular(w, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	t.Run("Get embeds formulars in order", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetCalculation(w, mux.SetURLVars(httptest.NewRequest("GET", "/api/calculations/"+c.ID, nil), vars))
		require.Equal(t, http.StatusOK, w.Code)

		var got model.Calculation
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		require.Len(t, got.Formulars, 2)
		assert.Equal(t, f1.ID, got.Formulars[0].FormularID)
		require.NotNil(t, got.Formulars[0].Formular)
		assert.Equal(t, "f1", got.Formulars[0].Formular.Name)
	})

	t.Run("Missing calculation", func(t *testing.T) {
		req := mux.SetURLVars(jsonRequest("POST", "/api/calculations/ghost/formulars", model.AddFormularInput{FormularID: f1.ID}),
			map[string]string{"id": "ghost"})
		w := httptest.NewRecorder()
		h.AddCalculationFormular(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Remove formular", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest("DELETE", "/api/calculations/"+c.ID+"/formulars/"+f1.ID, nil),
			map[string]string{"id": c.ID, "formularId": f1.ID})
		w := httptest.NewRecorder()
		h.RemoveCalculationFormular(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		h.ListCalculationFormulars(w, mux.SetURLVars(httptest.NewRequest("GET", "/", nil), vars))
		var cfs []model.CalculationFormular
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cfs))
		require.Len(t, cfs, 1)
		assert.Equal(t, f2.ID, cfs[0].FormularID)
	})
}

func TestHealth(t *testing.T) {
	h, _ := setupTest(t)
	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
