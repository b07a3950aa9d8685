package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	pkgkafka "github.com/utafrali/EcommerceSearch/pkg/kafka"

	"github.com/utafrali/EcommerceSearch/internal/domain"
)

// reindexPageSize is how many products are fetched (and bulk indexed) per page.
const reindexPageSize = 100

// productPage is the paginated response shape of the product service list API.
// Items are kept raw so one malformed entry does not abort the whole page.
type productPage struct {
	Data       []json.RawMessage `json:"data"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// remoteProduct is a product as returned by the product service, with its
// category and brand relations nested.
type remoteProduct struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	SKU              string `json:"sku"`
	BasePrice        int64  `json:"base_price"`
	DiscountPrice    *int64 `json:"discount_price,omitempty"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	IsFeatured       bool   `json:"is_featured"`
	Category         *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"category,omitempty"`
	Brand *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"brand,omitempty"`
}

// Reindex rebuilds the search index by paging through the product service
// API and bulk indexing every product. Only one reindex may run at a time.
func (s *SearchService) Reindex(ctx context.Context) error {
	if !s.reindexing.CompareAndSwap(false, true) {
		return errors.New("reindex already in progress")
	}
	defer s.reindexing.Store(false)

	s.logger.InfoContext(ctx, "reindex started",
		slog.String("source", s.productServiceURL),
	)

	total := 0
	for page := 1; ; page++ {
		resp, err := s.fetchProductPage(ctx, page)
		if err != nil {
			return fmt.Errorf("fetch products page %d: %w", page, err)
		}

		if len(resp.Data) == 0 {
			break
		}

		products := make([]domain.Product, 0, len(resp.Data))
		for _, raw := range resp.Data {
			var rp remoteProduct
			if err := json.Unmarshal(raw, &rp); err != nil || rp.ID == "" {
				s.logger.WarnContext(ctx, "skipping malformed product during reindex",
					slog.Int("page", page),
				)
				continue
			}
			products = append(products, productFromRemote(&rp))
		}

		if err := s.BulkIndexProducts(ctx, products); err != nil {
			return fmt.Errorf("reindex page %d: %w", page, err)
		}
		total += len(products)

		if page >= resp.TotalPages {
			break
		}
	}

	s.logger.InfoContext(ctx, "reindex completed",
		slog.Int("indexed", total),
	)
	s.publishReindexCompleted(ctx, total)

	return nil
}

// ReindexCompletedData is the payload of a search.reindexed event.
type ReindexCompletedData struct {
	Indexed int `json:"indexed"`
}

// publishReindexCompleted announces a finished reindex run on the broker so
// interested services (cache invalidation, admin dashboards) can react.
// Publishing is best-effort: the index is already rebuilt either way.
func (s *SearchService) publishReindexCompleted(ctx context.Context, indexed int) {
	if s.publisher == nil {
		return
	}

	topic := pkgkafka.Topic("search", "reindexed")
	event, err := pkgkafka.NewEvent(topic, "products", "search_index", "search-service", ReindexCompletedData{Indexed: indexed})
	if err != nil {
		s.logger.WarnContext(ctx, "build reindex event failed", slog.String("error", err.Error()))
		return
	}

	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.WarnContext(ctx, "publish reindex event failed", slog.String("error", err.Error()))
	}
}

// fetchProductPage retrieves one page of products from the product service.
func (s *SearchService) fetchProductPage(ctx context.Context, page int) (*productPage, error) {
	url := fmt.Sprintf("%s/api/v1/products?page=%d&per_page=%d", s.productServiceURL, page, reindexPageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var resp productPage
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &resp, nil
}

// productFromRemote converts the product service representation into the
// catalog record shape the mapper expects.
func productFromRemote(rp *remoteProduct) domain.Product {
	p := domain.Product{
		ID:               rp.ID,
		Name:             rp.Name,
		Slug:             rp.Slug,
		Description:      rp.Description,
		ShortDescription: rp.ShortDescription,
		SKU:              rp.SKU,
		BasePrice:        rp.BasePrice,
		DiscountPrice:    rp.DiscountPrice,
		Currency:         rp.Currency,
		IsActive:         rp.Status == "published",
		IsFeatured:       rp.IsFeatured,
	}

	if rp.Category != nil {
		p.CategoryID = &rp.Category.ID
	}
	if rp.Brand != nil {
		p.Brand = &domain.BrandRef{ID: rp.Brand.ID, Name: rp.Brand.Name}
	}

	return p
}
