package elasticsearch

import (
	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// facetTermsSize bounds the number of buckets returned per facet.
const facetTermsSize = 50

// clampPagination normalizes page/perPage to sane bounds.
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

// textClause builds the fuzzy multi-field match clause shared by free-text
// and faceted searches. Name is weighted double relative to the other fields.
func textClause(query string) map[string]interface{} {
	return map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":         query,
			"fields":        []string{"name^2", "description", "short_description", "sku"},
			"type":          "best_fields",
			"fuzziness":     "AUTO",
			"prefix_length": 1,
		},
	}
}

// buildSearchQuery constructs the query DSL for a free-text search.
func buildSearchQuery(query *domain.SearchQuery, page, perPage int) map[string]interface{} {
	esQuery := map[string]interface{}{
		"query":            textClause(query.Query),
		"from":             (page - 1) * perPage,
		"size":             perPage,
		"track_total_hits": true,
	}

	if sortClause := buildSort(query.SortBy); sortClause != nil {
		esQuery["sort"] = sortClause
	}

	return esQuery
}

// buildFacetedQuery constructs the query DSL for a filtered search with
// category and brand aggregations. Each clause is included only when its
// input is present; with no clauses at all the query degenerates to
// match_all, still paginated and still aggregated.
func buildFacetedQuery(query *domain.FacetedQuery, page, perPage int) map[string]interface{} {
	var mustClause interface{}
	if query.Query != "" {
		mustClause = textClause(query.Query)
	} else {
		mustClause = map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{mustClause},
	}
	if filters := buildFilters(query); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"from":             (page - 1) * perPage,
		"size":             perPage,
		"track_total_hits": true,
		"aggs": map[string]interface{}{
			domain.FacetCategories: map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "category_id",
					"size":  facetTermsSize,
				},
			},
			domain.FacetBrands: map[string]interface{}{
				"terms": map[string]interface{}{
					"field": "brand_id",
					"size":  facetTermsSize,
				},
			},
		},
	}
}

// buildFilters constructs the filter clauses for a faceted query.
func buildFilters(query *domain.FacetedQuery) []interface{} {
	var filters []interface{}

	if len(query.CategoryIDs) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{
				"category_id": query.CategoryIDs,
			},
		})
	}

	if len(query.BrandIDs) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{
				"brand_id": query.BrandIDs,
			},
		})
	}

	// Half-open price ranges are legal: either bound may be absent.
	if query.MinPrice != nil || query.MaxPrice != nil {
		rangeFilter := map[string]interface{}{}
		if query.MinPrice != nil {
			rangeFilter["gte"] = *query.MinPrice
		}
		if query.MaxPrice != nil {
			rangeFilter["lte"] = *query.MaxPrice
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{
				"base_price": rangeFilter,
			},
		})
	}

	return filters
}

// buildSort constructs the sort clause based on the sort option.
func buildSort(sortBy string) []interface{} {
	switch sortBy {
	case domain.SortPriceAsc:
		return []interface{}{
			map[string]interface{}{"base_price": "asc"},
		}
	case domain.SortPriceDesc:
		return []interface{}{
			map[string]interface{}{"base_price": "desc"},
		}
	case domain.SortNewest:
		return []interface{}{
			map[string]interface{}{"created_at": "desc"},
		}
	default:
		// SortRelevance: native scoring, score descending.
		return []interface{}{
			map[string]interface{}{"_score": "desc"},
		}
	}
}
