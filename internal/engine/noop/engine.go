package noop

import (
	"context"

	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// Engine is the degraded-mode implementation of the SearchEngine interface,
// used when no search engine is configured or reachable at startup. Write
// operations succeed without doing anything; queries return empty results
// instead of failing, so the rest of the platform keeps working while search
// is unavailable. It performs no network I/O at all.
type Engine struct{}

// New creates a new no-op search engine.
func New() *Engine {
	return &Engine{}
}

// Index is a no-op that always succeeds.
func (e *Engine) Index(_ context.Context, _ *domain.SearchableProduct) error {
	return nil
}

// Update is a no-op that always succeeds.
func (e *Engine) Update(_ context.Context, _ *domain.SearchableProduct) error {
	return nil
}

// Delete is a no-op that always succeeds.
func (e *Engine) Delete(_ context.Context, _ string) error {
	return nil
}

// BulkIndex is a no-op that always succeeds.
func (e *Engine) BulkIndex(_ context.Context, _ []domain.SearchableProduct) error {
	return nil
}

// Search always returns an empty result.
func (e *Engine) Search(_ context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	page, perPage := normalize(query.Page, query.PerPage)
	return domain.EmptyResult(page, perPage), nil
}

// Suggest always returns no suggestions.
func (e *Engine) Suggest(_ context.Context, _ string, _ int) ([]string, error) {
	return []string{}, nil
}

// FacetedSearch always returns an empty result with empty facets.
func (e *Engine) FacetedSearch(_ context.Context, query *domain.FacetedQuery) (*domain.SearchResult, error) {
	page, perPage := normalize(query.Page, query.PerPage)
	result := domain.EmptyResult(page, perPage)
	result.Facets = map[string][]domain.FacetItem{
		domain.FacetCategories: {},
		domain.FacetBrands:     {},
	}
	return result, nil
}

func normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return page, perPage
}
