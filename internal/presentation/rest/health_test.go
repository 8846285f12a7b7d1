package rest_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlitestore "github.com/cloudvigil/zombiescan/internal/infrastructure/persistence/sqlite"
	"github.com/cloudvigil/zombiescan/internal/presentation/rest"
	"github.com/cloudvigil/zombiescan/pkg/sqlitepool"
)

func newTestHandler(t *testing.T) *rest.HealthHandler {
	t.Helper()
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:      filepath.Join(t.TempDir(), "zombiescan.db"),
		PoolSize:  2,
		OnConnect: sqlitestore.ApplySchema,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return rest.NewHealthHandler(logger, pool)
}

func TestHealthz(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.Healthz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp rest.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "zombiescan", resp.Service)
	assert.NotEmpty(t, resp.Uptime)
}

func TestReadyz(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.Readyz(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp rest.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
}

func TestReadyzDatabaseDown(t *testing.T) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:      filepath.Join(t.TempDir(), "zombiescan.db"),
		PoolSize:  1,
		OnConnect: sqlitestore.ApplySchema,
	})
	require.NoError(t, err)
	require.NoError(t, pool.Close())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := rest.NewHealthHandler(logger, pool)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler.Readyz(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp rest.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not ready", resp.Status)
	assert.Equal(t, "unavailable", resp.Checks["database"])
}

func TestRegisterRoutes(t *testing.T) {
	handler := newTestHandler(t)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}
