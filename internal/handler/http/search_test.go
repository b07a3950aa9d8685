package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceSearch/pkg/health"

	"github.com/utafrali/EcommerceSearch/internal/domain"
	"github.com/utafrali/EcommerceSearch/internal/engine/memory"
	"github.com/utafrali/EcommerceSearch/internal/service"
)

// envelope mirrors the httputil response wrapper for decoding in tests.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := service.NewSearchService(memory.New(), logger, "http://localhost:8001")
	return NewRouter(svc, health.NewHandler(), logger)
}

func doJSON(t *testing.T, router http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

const galaxyBody = `{
	"id": "p1",
	"name": "Galaxy S24",
	"sku": "GS24-128",
	"category_id": "elektronik",
	"brand_id": "samsung",
	"brand_name": "Samsung",
	"base_price": 42999,
	"currency": "TRY",
	"is_active": true
}`

func TestIndexThenSearch(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", galaxyBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search?q=galaxy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SearchResult
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "Galaxy S24", result.Products[0].Name)
}

func TestSearch_BlankQueryReturnsEmpty(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", galaxyBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SearchResult
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.Total)
}

func TestSearch_InvalidSort(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/search?q=galaxy&sort=alphabetical", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_PARAMETER", env.Error.Code)
}

func TestIndexProduct_ValidationError(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", `{"name": "missing id"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
}

func TestIndexProduct_BodyTooLarge(t *testing.T) {
	router := testRouter(t)

	big := `{"id": "p1", "name": "` + strings.Repeat("x", 2<<20) + `"}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIndexProduct_RejectsNonJSONContentType(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/index", bytes.NewReader([]byte("id=p1")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestDeleteProduct(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", galaxyBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/search/p1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search?q=galaxy", "")
	var result domain.SearchResult
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.Total)

	// Deleting an unknown ID is still a success.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/search/nope", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBulkIndex(t *testing.T) {
	router := testRouter(t)

	body := `{"products": [
		{"id": "p1", "name": "Galaxy S24", "base_price": 42999, "is_active": true},
		{"id": "p2", "name": "Galaxy Tab", "base_price": 31999, "is_active": true}
	]}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/bulk", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decodeEnvelope(t, rec)
	var data struct {
		Indexed int `json:"indexed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Indexed)
}

func TestBulkIndex_EmptyListRejected(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/bulk", `{"products": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggest(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/index", galaxyBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search/suggest?q=gal", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []string{"Galaxy S24"}, data.Suggestions)
}

func TestSuggest_BlankPrefix(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/search/suggest?q=+", "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var data struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotNil(t, data.Suggestions)
	assert.Empty(t, data.Suggestions)
}

func TestFacetedSearch(t *testing.T) {
	router := testRouter(t)

	body := `{"products": [
		{"id": "p1", "name": "Galaxy S24", "category_id": "elektronik", "brand_id": "samsung", "base_price": 42999, "is_active": true},
		{"id": "p2", "name": "Running Shoes", "category_id": "ayakkabi", "brand_id": "nike", "base_price": 8999, "is_active": true}
	]}`
	rec := doJSON(t, router, http.MethodPost, "/api/v1/search/bulk", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search/faceted?category_ids=elektronik&min_price=40000", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.SearchResult
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.Total)
	assert.NotEmpty(t, result.Facets[domain.FacetCategories])
}

func TestFacetedSearch_InvalidPrice(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/search/faceted?min_price=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/search/faceted?max_price=-5", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFacetedSearch_InvertedRange(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/search/faceted?min_price=500&max_price=100", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/search", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
