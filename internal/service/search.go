package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/utafrali/EcommerceSearch/pkg/errors"
	pkgkafka "github.com/utafrali/EcommerceSearch/pkg/kafka"

	"github.com/utafrali/EcommerceSearch/internal/domain"
	"github.com/utafrali/EcommerceSearch/internal/engine"
)

// Publisher publishes domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// SearchService implements the business logic for search operations.
// Write-path methods come in two flavors: the strict Index/Update/Delete
// variants propagate engine failures (used by the admin HTTP endpoints),
// while the Sync variants absorb and log them, so a catalog mutation that
// has already committed is never failed by a search-index outage.
type SearchService struct {
	engine            engine.SearchEngine
	logger            *slog.Logger
	productServiceURL string
	httpClient        *http.Client
	publisher         Publisher
	reindexing        atomic.Bool
}

// NewSearchService creates a new search service.
func NewSearchService(eng engine.SearchEngine, logger *slog.Logger, productServiceURL string) *SearchService {
	return &SearchService{
		engine:            eng,
		logger:            logger,
		productServiceURL: productServiceURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithPublisher attaches an event publisher used to announce completed
// reindex runs. Without one, reindex completion is only logged.
func (s *SearchService) WithPublisher(p Publisher) *SearchService {
	s.publisher = p
	return s
}

// IndexProduct maps a catalog record to a search document and upserts it.
func (s *SearchService) IndexProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("index product: id is required")
	}
	if product.Name == "" {
		return fmt.Errorf("index product: name is required")
	}

	doc := domain.DocumentFromProduct(product)

	if err := s.engine.Index(ctx, doc); err != nil {
		return fmt.Errorf("index product: %w", err)
	}

	s.logger.InfoContext(ctx, "product indexed",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return nil
}

// UpdateProduct re-indexes a catalog record. The underlying operation is a
// full-document upsert, identical to IndexProduct.
func (s *SearchService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("update product: id is required")
	}
	if product.Name == "" {
		return fmt.Errorf("update product: name is required")
	}

	doc := domain.DocumentFromProduct(product)

	if err := s.engine.Update(ctx, doc); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product re-indexed",
		slog.String("product_id", product.ID),
	)

	return nil
}

// DeleteProduct removes a product from the search index. Deleting a product
// that was never indexed succeeds.
func (s *SearchService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete product: id is required")
	}

	if err := s.engine.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted from index",
		slog.String("product_id", id),
	)

	return nil
}

// BulkIndexProducts indexes multiple catalog records, skipping entries
// without an ID.
func (s *SearchService) BulkIndexProducts(ctx context.Context, products []domain.Product) error {
	docs := make([]domain.SearchableProduct, 0, len(products))
	for i := range products {
		if products[i].ID == "" {
			continue
		}
		docs = append(docs, *domain.DocumentFromProduct(&products[i]))
	}

	if err := s.engine.BulkIndex(ctx, docs); err != nil {
		return fmt.Errorf("bulk index: %w", err)
	}

	s.logger.InfoContext(ctx, "bulk index completed",
		slog.Int("count", len(docs)),
	)

	return nil
}

// SyncIndex upserts a product into the index on a best-effort basis. The
// catalog write has already committed by the time this runs, so a failure
// here is logged and swallowed; the index simply lags until the next event
// or a reindex catches it up.
func (s *SearchService) SyncIndex(ctx context.Context, product *domain.Product) {
	if err := s.IndexProduct(ctx, product); err != nil {
		s.logger.WarnContext(ctx, "best-effort index failed, search index may lag the catalog",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}
}

// SyncDelete removes a product from the index on a best-effort basis,
// with the same failure policy as SyncIndex.
func (s *SearchService) SyncDelete(ctx context.Context, id string) {
	if err := s.DeleteProduct(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "best-effort delete failed, search index may lag the catalog",
			slog.String("product_id", id),
			slog.String("error", err.Error()),
		)
	}
}

// Search executes a free-text query. A blank query is defined as "no
// results" at the contract level and never reaches the engine.
func (s *SearchService) Search(ctx context.Context, query *domain.SearchQuery) (*domain.SearchResult, error) {
	normalizeSearchQuery(query)

	if strings.TrimSpace(query.Query) == "" {
		return domain.EmptyResult(query.Page, query.PerPage), nil
	}

	result, err := s.engine.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	s.logger.DebugContext(ctx, "search executed",
		slog.String("query", query.Query),
		slog.Int("total", result.Total),
		slog.Int64("took_ms", result.TookMs),
	)

	return result, nil
}

// Suggest returns autocomplete suggestions for the prefix. A blank prefix
// returns an empty list without querying the engine.
func (s *SearchService) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return []string{}, nil
	}
	if limit <= 0 {
		limit = 10
	}

	suggestions, err := s.engine.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	return suggestions, nil
}

// FacetedSearch executes a filtered query with facet aggregations. All
// clauses are optional; a fully empty query matches the whole corpus and
// still returns facet counts over it.
func (s *SearchService) FacetedSearch(ctx context.Context, query *domain.FacetedQuery) (*domain.SearchResult, error) {
	if query.MinPrice != nil && query.MaxPrice != nil && *query.MinPrice > *query.MaxPrice {
		return nil, apperrors.InvalidInput("min_price must not exceed max_price")
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PerPage <= 0 {
		query.PerPage = 20
	}
	if query.PerPage > 100 {
		query.PerPage = 100
	}
	query.Query = strings.TrimSpace(query.Query)

	result, err := s.engine.FacetedSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("faceted search: %w", err)
	}

	s.logger.DebugContext(ctx, "faceted search executed",
		slog.String("query", query.Query),
		slog.Int("category_filters", len(query.CategoryIDs)),
		slog.Int("brand_filters", len(query.BrandIDs)),
		slog.Int("total", result.Total),
	)

	return result, nil
}

func normalizeSearchQuery(query *domain.SearchQuery) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PerPage <= 0 {
		query.PerPage = 20
	}
	if query.PerPage > 100 {
		query.PerPage = 100
	}
	if query.SortBy == "" {
		query.SortBy = domain.SortRelevance
	}
}
