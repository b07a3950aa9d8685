package elasticsearch

import (
	"context"
)

// Suggest returns autocomplete suggestions for the given prefix.
// It queries the name.autocomplete edge_ngram sub-field and returns distinct
// product names ordered by match quality, limited to active products.
func (e *Engine) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []interface{}{
					map[string]interface{}{
						"match": map[string]interface{}{
							"name.autocomplete": prefix,
						},
					},
				},
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{
							"is_active": true,
						},
					},
				},
			},
		},
		"size":    limit,
		"_source": []string{"name"},
		"sort": []interface{}{
			map[string]interface{}{"_score": "desc"},
		},
	}

	esResp, err := e.search(ctx, query, "suggest")
	if err != nil {
		return nil, err
	}

	// Deduplicate names while preserving score order.
	seen := make(map[string]struct{})
	var names []string
	for _, hit := range esResp.Hits.Hits {
		name := hit.Source.Name
		if _, exists := seen[name]; !exists {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names, nil
}
