package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/EcommerceSearch/pkg/httputil"
	"github.com/utafrali/EcommerceSearch/pkg/validator"

	"github.com/utafrali/EcommerceSearch/internal/domain"
	"github.com/utafrali/EcommerceSearch/internal/service"
)

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// IndexProductRequest is the JSON request body for indexing a product.
type IndexProductRequest struct {
	ID               string  `json:"id" validate:"required"`
	Name             string  `json:"name" validate:"required,min=1"`
	Slug             string  `json:"slug"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description"`
	SKU              string  `json:"sku"`
	CategoryID       *string `json:"category_id"`
	BrandID          *string `json:"brand_id"`
	BrandName        string  `json:"brand_name"`
	BasePrice        int64   `json:"base_price" validate:"gte=0"`
	DiscountPrice    *int64  `json:"discount_price"`
	Currency         string  `json:"currency"`
	IsActive         bool    `json:"is_active"`
	IsFeatured       bool    `json:"is_featured"`
}

// BulkIndexRequest is the JSON request body for bulk indexing products.
type BulkIndexRequest struct {
	Products []IndexProductRequest `json:"products" validate:"required,min=1,max=500,dive"`
}

func (req *IndexProductRequest) toProduct() domain.Product {
	p := domain.Product{
		ID:               req.ID,
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		SKU:              req.SKU,
		BasePrice:        req.BasePrice,
		DiscountPrice:    req.DiscountPrice,
		Currency:         req.Currency,
		CategoryID:       req.CategoryID,
		IsActive:         req.IsActive,
		IsFeatured:       req.IsFeatured,
	}
	if req.BrandID != nil {
		p.Brand = &domain.BrandRef{ID: *req.BrandID, Name: req.BrandName}
	}
	return p
}

// --- Handlers ---

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && !domain.IsValidSort(sortBy) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sort must be one of: " + strings.Join(domain.ValidSortOptions(), ", "),
			},
		})
		return
	}

	query := &domain.SearchQuery{
		Query:   strings.TrimSpace(r.URL.Query().Get("q")),
		SortBy:  sortBy,
		Page:    1,
		PerPage: 20,
	}
	parsePagination(r, &query.Page, &query.PerPage)

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// FacetedSearch handles GET /api/v1/search/faceted
func (h *SearchHandler) FacetedSearch(w http.ResponseWriter, r *http.Request) {
	query := &domain.FacetedQuery{
		Query:       strings.TrimSpace(r.URL.Query().Get("q")),
		CategoryIDs: splitParam(r.URL.Query().Get("category_ids")),
		BrandIDs:    splitParam(r.URL.Query().Get("brand_ids")),
		Page:        1,
		PerPage:     20,
	}
	parsePagination(r, &query.Page, &query.PerPage)

	var ok bool
	if query.MinPrice, ok = parsePriceParam(w, r, "min_price"); !ok {
		return
	}
	if query.MaxPrice, ok = parsePriceParam(w, r, "max_price"); !ok {
		return
	}

	result, err := h.service.FacetedSearch(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Suggest handles GET /api/v1/search/suggest
func (h *SearchHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	prefix := strings.TrimSpace(r.URL.Query().Get("q"))

	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 20 {
			limit = l
		}
	}

	suggestions, err := h.service.Suggest(r.Context(), prefix, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"suggestions": suggestions}})
}

// IndexProduct handles POST /api/v1/search/index
func (h *SearchHandler) IndexProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req IndexProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product := req.toProduct()
	if err := h.service.IndexProduct(r.Context(), &product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": req.ID, "status": "indexed"}})
}

// DeleteProduct handles DELETE /api/v1/search/{id}
func (h *SearchHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// BulkIndex handles POST /api/v1/search/bulk
func (h *SearchHandler) BulkIndex(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB limit for bulk endpoint

	var req BulkIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	products := make([]domain.Product, 0, len(req.Products))
	for i := range req.Products {
		products = append(products, req.Products[i].toProduct())
	}

	if err := h.service.BulkIndexProducts(r.Context(), products); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"indexed": len(products), "status": "ok"}})
}

// Reindex handles POST /api/v1/search/reindex
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	go func() {
		ctx := context.Background()
		if err := h.service.Reindex(ctx); err != nil {
			h.logger.ErrorContext(ctx, "background reindex failed", "error", err)
		}
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: map[string]string{"status": "reindex started"}})
}

// --- Query parameter helpers ---

func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parsePagination(r *http.Request, page, perPage *int) {
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			*page = p
		}
	}
	if v := r.URL.Query().Get("per_page"); v != "" {
		if pp, err := strconv.Atoi(v); err == nil && pp > 0 && pp <= 100 {
			*perPage = pp
		}
	}
}

// parsePriceParam parses an optional non-negative price query parameter.
// On invalid input it writes a 400 response and returns ok=false.
func parsePriceParam(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, true
	}

	price, err := strconv.ParseInt(v, 10, 64)
	if err != nil || price < 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: name + " must be a non-negative number"},
		})
		return nil, false
	}

	return &price, true
}
