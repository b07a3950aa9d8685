package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// Engine is an in-memory implementation of the SearchEngine interface used
// for development and tests. Matching is simple case-insensitive substring
// search over the same fields the real engine analyzes; filter and facet
// semantics mirror the Elasticsearch contract. Thread-safe via sync.RWMutex.
type Engine struct {
	mu   sync.RWMutex
	docs map[string]domain.SearchableProduct
}

// New creates a new in-memory search engine.
func New() *Engine {
	return &Engine{
		docs: make(map[string]domain.SearchableProduct),
	}
}

// Index adds or overwrites a single document.
func (e *Engine) Index(_ context.Context, doc *domain.SearchableProduct) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.docs[doc.ID] = *doc
	return nil
}

// Update re-upserts a document, identical to Index.
func (e *Engine) Update(ctx context.Context, doc *domain.SearchableProduct) error {
	return e.Index(ctx, doc)
}

// Delete removes a document by its ID. Absent IDs are not an error.
func (e *Engine) Delete(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.docs, id)
	return nil
}

// BulkIndex adds or overwrites multiple documents.
func (e *Engine) BulkIndex(_ context.Context, docs []domain.SearchableProduct) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range docs {
		e.docs[docs[i].ID] = docs[i]
	}
	return nil
}

// Search executes a free-text query against the in-memory index.
func (e *Engine) Search(_ context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	queryLower := strings.ToLower(query.Query)

	matched := make([]domain.SearchableProduct, 0)
	for _, d := range e.docs {
		if matchesText(d, queryLower) {
			matched = append(matched, d)
		}
	}

	sortDocs(matched, query.SortBy)

	total := len(matched)
	page, perPage := clampPagination(query.Page, query.PerPage)

	return &domain.SearchResult{
		Products: paginate(matched, page, perPage),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		TookMs:   time.Since(start).Milliseconds(),
	}, nil
}

// Suggest returns distinct names of active documents whose name contains the
// prefix (case-insensitive), truncated to limit.
func (e *Engine) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	prefixLower := strings.ToLower(prefix)

	var names []string
	for _, d := range e.docs {
		if !d.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(d.Name), prefixLower) {
			names = append(names, d.Name)
		}
	}

	// Deterministic order in place of relevance scoring.
	sort.Strings(names)

	seen := make(map[string]struct{}, len(names))
	deduped := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		deduped = append(deduped, n)
		if len(deduped) == limit {
			break
		}
	}

	return deduped, nil
}

// FacetedSearch executes a filtered query and computes category and brand
// facet counts over the full filtered set (not just the returned page).
func (e *Engine) FacetedSearch(_ context.Context, query *domain.FacetedQuery) (*domain.SearchResult, error) {
	start := time.Now()

	e.mu.RLock()
	defer e.mu.RUnlock()

	queryLower := strings.ToLower(query.Query)

	matched := make([]domain.SearchableProduct, 0)
	for _, d := range e.docs {
		if !matchesText(d, queryLower) {
			continue
		}
		if !matchesFilters(d, query) {
			continue
		}
		matched = append(matched, d)
	}

	// Stable order so pagination is deterministic across calls.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	page, perPage := clampPagination(query.Page, query.PerPage)

	return &domain.SearchResult{
		Products: paginate(matched, page, perPage),
		Total:    total,
		Page:     page,
		PerPage:  perPage,
		Facets:   computeFacets(matched),
		TookMs:   time.Since(start).Milliseconds(),
	}, nil
}

// matchesText checks the substring match over name, descriptions, and SKU.
// A blank query matches everything.
func matchesText(d domain.SearchableProduct, queryLower string) bool {
	if queryLower == "" {
		return true
	}
	for _, field := range []string{d.Name, d.Description, d.ShortDescription, d.SKU} {
		if strings.Contains(strings.ToLower(field), queryLower) {
			return true
		}
	}
	return false
}

// matchesFilters checks the term-set and price-range filters of a faceted query.
func matchesFilters(d domain.SearchableProduct, query *domain.FacetedQuery) bool {
	if len(query.CategoryIDs) > 0 && !containsString(query.CategoryIDs, d.CategoryID) {
		return false
	}
	if len(query.BrandIDs) > 0 && !containsString(query.BrandIDs, d.BrandID) {
		return false
	}
	if query.MinPrice != nil && d.BasePrice < *query.MinPrice {
		return false
	}
	if query.MaxPrice != nil && d.BasePrice > *query.MaxPrice {
		return false
	}
	return true
}

// computeFacets counts category and brand terms across the matched set,
// ordered by count descending with key as tie-break.
func computeFacets(matched []domain.SearchableProduct) map[string][]domain.FacetItem {
	categories := make(map[string]int64)
	brands := make(map[string]int64)
	for _, d := range matched {
		if d.CategoryID != "" {
			categories[d.CategoryID]++
		}
		if d.BrandID != "" {
			brands[d.BrandID]++
		}
	}

	return map[string][]domain.FacetItem{
		domain.FacetCategories: facetItems(categories),
		domain.FacetBrands:     facetItems(brands),
	}
}

func facetItems(counts map[string]int64) []domain.FacetItem {
	items := make([]domain.FacetItem, 0, len(counts))
	for k, c := range counts {
		items = append(items, domain.FacetItem{Key: k, Count: c})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Key < items[j].Key
	})
	return items
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func clampPagination(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func paginate(docs []domain.SearchableProduct, page, perPage int) []domain.SearchableProduct {
	offset := (page - 1) * perPage
	if offset > len(docs) {
		offset = len(docs)
	}
	end := offset + perPage
	if end > len(docs) {
		end = len(docs)
	}
	return docs[offset:end]
}

// sortDocs sorts the matched documents based on the sort option.
func sortDocs(docs []domain.SearchableProduct, sortBy string) {
	switch sortBy {
	case domain.SortPriceAsc:
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].BasePrice < docs[j].BasePrice
		})
	case domain.SortPriceDesc:
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].BasePrice > docs[j].BasePrice
		})
	case domain.SortNewest:
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		})
	default:
		// SortRelevance has no scoring here; sort by ID for determinism.
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].ID < docs[j].ID
		})
	}
}
