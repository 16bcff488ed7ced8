package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/chronos-ledger/internal/interfaces/http"
)

const docsFile = "../../../docs/swagger.json"

func TestDocs_SirveSwaggerUI(t *testing.T) {
	f := newAPI(t)
	apphttp.Docs(f.app, docsFile)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, strings.ToLower(string(body)), "swagger")
}

// Cada ruta registrada en /api aparece documentada con su método.
func TestDocs_CubreTodasLasRutas(t *testing.T) {
	raw, err := os.ReadFile(docsFile)
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	f := newAPI(t)
	checked := 0
	for _, r := range f.app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		method := strings.ToLower(r.Method)
		if method != "get" && method != "post" && method != "delete" {
			continue
		}
		path := strings.TrimSuffix(r.Path, "/")
		path = strings.ReplaceAll(path, ":id", "{id}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "ruta sin documentar: %s", path) {
			_, ok = ops[method]
			assert.True(t, ok, "método sin documentar: %s %s", r.Method, path)
		}
		checked++
	}
	assert.GreaterOrEqual(t, checked, 22)
}
