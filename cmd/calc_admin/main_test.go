package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	apihttp "github.com/sivaram/calc-admin/api/http"
	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/store"
	"github.com/sivaram/calc-admin/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startAPI(t *testing.T) string {
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
	return srv.URL + "/api"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNodeCommands(t *testing.T) {
	api := startAPI(t)

	out, err := execute(t, "--api", api, "node", "create", "--name", "vat", "--data", "0.19")
	require.NoError(t, err)
	assert.Contains(t, out, "vat")

	out, err = execute(t, "--api", api, "node", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "0.19")

	_, err = execute(t, "--api", api, "node", "get", "missing")
	assert.ErrorContains(t, err, "status 404")
}

func TestExportCommand(t *testing.T) {
	api := startAPI(t)

	_, err := execute(t, "--api", api, "node", "create", "--name", "net")
	require.NoError(t, err)
	_, err = execute(t, "--api", api, "formular", "create", "--name", "gross")
	require.NoError(t, err)
	_, err = execute(t, "--api", api, "calculation", "create", "--name", "invoice")
	require.NoError(t, err)

	c := apiClient()
	nodes, err := c.Nodes.List(context.Background())
	require.NoError(t, err)
	formulars, err := c.Formulars.List(context.Background())
	require.NoError(t, err)
	calcs, err := c.Calculations.List(context.Background())
	require.NoError(t, err)

	_, err = execute(t, "--api", api, "formular", "add-node", formulars[0].ID, nodes[0].ID)
	require.NoError(t, err)
	_, err = execute(t, "--api", api, "calc", "add-formular", calcs[0].ID, formulars[0].ID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "invoice.yaml")
	_, err = execute(t, "--api", api, "export", calcs[0].ID, "-o", path)
	require.NoError(t, err)
	exportOut = ""

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)
	assert.True(t, strings.HasPrefix(doc, "id: "+calcs[0].ID))
	assert.Contains(t, doc, "name: gross")
	assert.Contains(t, doc, "name: net")
}
