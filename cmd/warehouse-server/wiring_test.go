package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/book-warehouse-go/internal/bootstrap"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

func testConfig(t *testing.T, env map[string]string) config.Config {
	t.Helper()

	cfg, err := config.FromLookup(func(key string) (string, bool) {
		val, ok := env[key]
		return val, ok
	})
	require.NoError(t, err)

	return cfg
}

func testLogger() *oteladapters.SlogBridgeLogger {
	return oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewTextHandler(io.Discard, nil))
}

func startWarehouse(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()

	w, err := buildWarehouse(context.Background(), cfg, testLogger(), bootstrap.Telemetry{})
	require.NoError(t, err)
	t.Cleanup(w.close)

	server := httptest.NewServer(w.handler)
	t.Cleanup(server.Close)

	return server
}

func post(t *testing.T, url, body string) (int, string) {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body)) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, readBody(t, resp.Body)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, readBody(t, resp.Body)
}

func readBody(t *testing.T, body io.Reader) string {
	t.Helper()

	var buf bytes.Buffer
	_, err := buf.ReadFrom(body)
	require.NoError(t, err)

	return buf.String()
}

func Test_BuildWarehouse_MemoryStorageWithStaticCatalog(t *testing.T) {
	// arrange
	server := startWarehouse(t, testConfig(t, map[string]string{
		"WAREHOUSE_CATALOG_BOOKS": "book-1, book-2",
	}))

	// act
	placeStatus, _ := post(t, server.URL+"/warehouse/stock", `{"bookId":"book-1","shelf":"A1","numberOfBooks":3}`)
	stockStatus, stockBody := get(t, server.URL+"/warehouse/stock/book-1")
	orderStatus, orderBody := post(t, server.URL+"/warehouse/orders", `{"books":{"book-2":1}}`)
	unknownStatus, _ := post(t, server.URL+"/warehouse/orders", `{"books":{"book-9":1}}`)

	// assert
	assert.Equal(t, http.StatusOK, placeStatus)
	assert.Equal(t, http.StatusOK, stockStatus)
	assert.JSONEq(t, `{"stock":3}`, stockBody)
	assert.Equal(t, http.StatusOK, orderStatus)
	assert.Contains(t, orderBody, `"orderId"`)
	assert.Equal(t, http.StatusNotFound, unknownStatus)
}

func Test_BuildWarehouse_SQLiteCatalogIsSeeded(t *testing.T) {
	// arrange
	server := startWarehouse(t, testConfig(t, map[string]string{
		"WAREHOUSE_CATALOG":       config.CatalogSQL,
		"WAREHOUSE_CATALOG_DSN":   filepath.Join(t.TempDir(), "catalog.db"),
		"WAREHOUSE_CATALOG_BOOKS": "book-1",
	}))

	// act
	knownStatus, _ := post(t, server.URL+"/warehouse/orders", `{"books":{"book-1":2}}`)
	unknownStatus, _ := post(t, server.URL+"/warehouse/orders", `{"books":{"book-2":1}}`)
	pendingStatus, pendingBody := get(t, server.URL+"/warehouse/orders/pending")

	// assert
	assert.Equal(t, http.StatusOK, knownStatus)
	assert.Equal(t, http.StatusNotFound, unknownStatus)
	assert.Equal(t, http.StatusOK, pendingStatus)
	assert.Contains(t, pendingBody, `"book-1":2`)
}

func Test_BuildWarehouse_RejectsUnsupportedStorage(t *testing.T) {
	// arrange
	cfg := testConfig(t, nil)
	cfg.Storage = "cassandra"

	// act
	w, err := buildWarehouse(context.Background(), cfg, testLogger(), bootstrap.Telemetry{})

	// assert
	assert.ErrorIs(t, err, config.ErrUnsupportedStorage)
	assert.Nil(t, w)
}
