package engine

import (
	"context"

	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// SearchEngine defines the contract for indexing and querying product
// documents. Implementations may use Elasticsearch, in-memory storage, or a
// no-op backend when no engine is configured. Callers must not be able to
// tell the implementations apart at the type level.
type SearchEngine interface {
	// Index upserts a single document by its ID. The operation overwrites
	// the whole document, so retries cannot produce partial merges.
	Index(ctx context.Context, doc *domain.SearchableProduct) error

	// Update re-upserts a document. It is behaviorally identical to Index
	// (full overwrite, not a partial patch) and exists as a distinct name
	// for call-site clarity.
	Update(ctx context.Context, doc *domain.SearchableProduct) error

	// Delete removes a document by its ID. Deleting an absent ID is not an
	// error; only engine-level failures propagate.
	Delete(ctx context.Context, id string) error

	// BulkIndex upserts multiple documents. Partial failures do not roll
	// back documents already written.
	BulkIndex(ctx context.Context, docs []domain.SearchableProduct) error

	// Search executes a fuzzy free-text query and returns matching documents
	// ranked by relevance (or an explicit sort).
	Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error)

	// Suggest returns up to limit distinct product names matching the prefix.
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)

	// FacetedSearch executes a filtered query and returns matching documents
	// together with category and brand facet counts computed over the same
	// filtered set.
	FacetedSearch(ctx context.Context, query *domain.FacetedQuery) (*domain.SearchResult, error)
}
