package domain

// Facet names returned by faceted searches.
const (
	FacetCategories = "categories"
	FacetBrands     = "brands"
)

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// SearchQuery holds the parameters for a free-text search request.
type SearchQuery struct {
	Query   string `json:"query"`
	SortBy  string `json:"sort_by"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// FacetedQuery holds the parameters for a filtered search with facet
// aggregations. Every clause is optional: a zero-value query matches the
// whole corpus and still returns facet counts over it.
type FacetedQuery struct {
	Query       string   `json:"query"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	BrandIDs    []string `json:"brand_ids,omitempty"`
	MinPrice    *int64   `json:"min_price,omitempty"`
	MaxPrice    *int64   `json:"max_price,omitempty"`
	Page        int      `json:"page"`
	PerPage     int      `json:"per_page"`
}

// FacetItem is one (term value, match count) pair within a facet.
// Count is computed over the full filtered set, not the current page.
type FacetItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// SearchResult holds a paginated search response. Facets is populated only
// by faceted searches.
type SearchResult struct {
	Products []SearchableProduct    `json:"products"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PerPage  int                    `json:"per_page"`
	Facets   map[string][]FacetItem `json:"facets,omitempty"`
	TookMs   int64                  `json:"took_ms"`
}

// EmptyResult returns a result with zero matches for the given pagination.
// Used for blank-query short-circuits and by the disabled engine.
func EmptyResult(page, perPage int) *SearchResult {
	return &SearchResult{
		Products: []SearchableProduct{},
		Total:    0,
		Page:     page,
		PerPage:  perPage,
	}
}
