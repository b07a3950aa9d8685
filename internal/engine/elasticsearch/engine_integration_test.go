package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// Integration tests against a real Elasticsearch, enabled by setting
// ELASTICSEARCH_URL. Each test gets its own index and drops it afterwards.

func integrationEngine(t *testing.T) *Engine {
	t.Helper()

	esURL := os.Getenv("ELASTICSEARCH_URL")
	if esURL == "" {
		t.Skip("ELASTICSEARCH_URL not set, skipping integration test")
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	indexName := fmt.Sprintf("test_products_%d", time.Now().UnixNano())

	eng, err := New(esURL, indexName, logger)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = eng.DeleteIndex(context.Background())
	})

	return eng
}

func seedIntegration(t *testing.T, eng *Engine) {
	t.Helper()
	ctx := context.Background()

	docs := []domain.SearchableProduct{
		{ID: "p1", Name: "Galaxy S24", CategoryID: "elektronik", BrandID: "samsung", BrandName: "Samsung", BasePrice: 42999, IsActive: true},
		{ID: "p2", Name: "Galaxy Tab", CategoryID: "elektronik", BrandID: "samsung", BrandName: "Samsung", BasePrice: 31999, IsActive: true},
		{ID: "p3", Name: "Running Shoes", CategoryID: "ayakkabi", BrandID: "nike", BrandName: "Nike", BasePrice: 8999, IsActive: true},
	}
	require.NoError(t, eng.BulkIndex(ctx, docs))
}

func TestIntegration_Ping(t *testing.T) {
	eng := integrationEngine(t)
	assert.NoError(t, eng.Ping(context.Background()))
}

func TestIntegration_EnsureIndexIsIdempotent(t *testing.T) {
	eng := integrationEngine(t)

	// Bootstrapping again against the same index must not fail.
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	again, err := New(os.Getenv("ELASTICSEARCH_URL"), eng.indexName, logger)
	require.NoError(t, err)
	assert.NoError(t, again.Ping(context.Background()))
}

func TestIntegration_FuzzySearch(t *testing.T) {
	eng := integrationEngine(t)
	seedIntegration(t, eng)

	// One character transposed, still matches by fuzziness.
	result, err := eng.Search(context.Background(), &domain.SearchQuery{
		Query:   "glaxy",
		Page:    1,
		PerPage: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	for _, p := range result.Products {
		assert.Contains(t, p.Name, "Galaxy")
	}
}

func TestIntegration_Suggest(t *testing.T) {
	eng := integrationEngine(t)
	seedIntegration(t, eng)

	names, err := eng.Suggest(context.Background(), "gala", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Galaxy S24", "Galaxy Tab"}, names)
}

func TestIntegration_FacetedSearch(t *testing.T) {
	eng := integrationEngine(t)
	seedIntegration(t, eng)

	minPrice := int64(40000)
	result, err := eng.FacetedSearch(context.Background(), &domain.FacetedQuery{
		CategoryIDs: []string{"elektronik"},
		MinPrice:    &minPrice,
		Page:        1,
		PerPage:     20,
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "p1", result.Products[0].ID)

	// Facet counts span the filtered set, not the page.
	var elektronik int64
	for _, item := range result.Facets[domain.FacetCategories] {
		if item.Key == "elektronik" {
			elektronik = item.Count
		}
	}
	assert.Equal(t, int64(1), elektronik)
}

func TestIntegration_DeleteThenAbsent(t *testing.T) {
	eng := integrationEngine(t)
	seedIntegration(t, eng)

	ctx := context.Background()
	require.NoError(t, eng.Delete(ctx, "p1"))
	require.NoError(t, eng.Delete(ctx, "p1"))

	result, err := eng.Search(ctx, &domain.SearchQuery{Query: "Galaxy S24", Page: 1, PerPage: 20})
	require.NoError(t, err)
	for _, p := range result.Products {
		assert.NotEqual(t, "p1", p.ID)
	}
}

func TestIntegration_UpdateOverwrites(t *testing.T) {
	eng := integrationEngine(t)
	ctx := context.Background()

	d := domain.SearchableProduct{ID: "p1", Name: "Galaxy S24", Description: "old", BasePrice: 100, IsActive: true}
	require.NoError(t, eng.Index(ctx, &d))

	updated := domain.SearchableProduct{ID: "p1", Name: "Galaxy S24", BasePrice: 200, IsActive: true}
	require.NoError(t, eng.Update(ctx, &updated))

	result, err := eng.Search(ctx, &domain.SearchQuery{Query: "galaxy", Page: 1, PerPage: 20})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Empty(t, result.Products[0].Description)
	assert.Equal(t, int64(200), result.Products[0].BasePrice)
}
