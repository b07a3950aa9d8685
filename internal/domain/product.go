package domain

import "time"

// BrandRef is the resolved brand relation carried on a catalog record.
type BrandRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is the authoritative catalog record as seen by the search service.
// It is read-only here: the catalog service owns and mutates it, and this
// service only observes it at the moment of indexing.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	SKU              string    `json:"sku"`
	BasePrice        int64     `json:"base_price"`
	DiscountPrice    *int64    `json:"discount_price,omitempty"`
	Currency         string    `json:"currency"`
	CategoryID       *string   `json:"category_id,omitempty"`
	Brand            *BrandRef `json:"brand,omitempty"`
	IsActive         bool      `json:"is_active"`
	IsFeatured       bool      `json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
