package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	apihttp "github.com/sivaram/calc-admin/api/http"
	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/model"
	"github.com/sivaram/calc-admin/internal/store"
	"github.com/sivaram/calc-admin/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// leveldb's memory pool drainer outlives Close by up to a second.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"),
	)
}

// newTestClient runs the real API service behind an httptest server.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := mux.NewRouter()
	routes.RegisterRoutes(r, apihttp.NewHandler(catalog.New(st, logger), nil), nil, logger)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		st.Close()
	})
	return New(srv.URL+"/api", WithHTTPClient(srv.Client()))
}

func TestNodeRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.Nodes.Create(ctx, model.CreateNodeInput{Name: "rate", NodeData: "0.19"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := c.Nodes.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "0.19", got.NodeData)

	name := "vat"
	updated, err := c.Nodes.Update(ctx, created.ID, model.UpdateNodeInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "vat", updated.Name)
	assert.Equal(t, "0.19", updated.NodeData)

	require.NoError(t, c.Nodes.Delete(ctx, created.ID))
	nodes, err := c.Nodes.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestMembershipsRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	f, err := c.Formulars.Create(ctx, model.CreateFormularInput{Name: "gross"})
	require.NoError(t, err)
	var ids []string
	for _, name := range []string{"net", "vat", "fee"} {
		n, err := c.Nodes.Create(ctx, model.CreateNodeInput{Name: name})
		require.NoError(t, err)
		_, err = c.Formulars.AddNode(ctx, f.ID, model.AddNodeInput{NodeID: n.ID})
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}

	fns, err := c.Formulars.ReorderNodes(ctx, f.ID, model.ReorderNodesInput{NodeOrder: []string{ids[2], ids[0], ids[1]}})
	require.NoError(t, err)
	got := make([]string, len(fns))
	for i, fn := range fns {
		got[i] = fn.NodeID
	}
	if diff := cmp.Diff([]string{ids[2], ids[0], ids[1]}, got); diff != "" {
		t.Errorf("reordered nodes mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, c.Formulars.RemoveNode(ctx, f.ID, ids[0]))
	fns, err = c.Formulars.Nodes(ctx, f.ID)
	require.NoError(t, err)
	require.Len(t, fns, 2)
	assert.Equal(t, ids[2], fns[0].NodeID)
	assert.Equal(t, ids[1], fns[1].NodeID)

	calc, err := c.Calculations.Create(ctx, model.CreateCalculationInput{Name: "invoice"})
	require.NoError(t, err)
	_, err = c.Calculations.AddFormular(ctx, calc.ID, model.AddFormularInput{FormularID: f.ID})
	require.NoError(t, err)

	full, err := c.Calculations.Get(ctx, calc.ID)
	require.NoError(t, err)
	require.Len(t, full.Formulars, 1)
	assert.Equal(t, f.ID, full.Formulars[0].FormularID)

	require.NoError(t, c.Calculations.RemoveFormular(ctx, calc.ID, f.ID))
	cfs, err := c.Calculations.Formulars(ctx, calc.ID)
	require.NoError(t, err)
	assert.Empty(t, cfs)
}

func TestStatusError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Nodes.Get(context.Background(), "missing")
	var se *StatusError
	require.True(t, errors.As(err, &se), "expected *StatusError, got %T", err)
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.Equal(t, "/nodes/missing", se.Path)

	_, err = c.Nodes.Create(context.Background(), model.CreateNodeInput{})
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "name is required", se.Body)
}

func TestRequestShape(t *testing.T) {
	var gotMethod, gotPath, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.EscapedPath(), r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", WithHTTPClient(srv.Client()))
	require.NoError(t, c.Calculations.RemoveFormular(context.Background(), "c 1", "f/2"))
	assert.Equal(t, "DELETE", gotMethod)
	assert.Equal(t, "/api/calculations/c%201/formulars/f%2F2", gotPath)
	assert.Empty(t, gotType)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(50*time.Millisecond))
	_, err := c.Nodes.List(context.Background())
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}
