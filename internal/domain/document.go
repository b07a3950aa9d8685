package domain

import "time"

// SearchableProduct is the denormalized product document stored in the search
// index. Its ID always equals the catalog record's ID; every index operation
// overwrites the whole document, never merges fields.
type SearchableProduct struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	SKU              string    `json:"sku"`
	CategoryID       string    `json:"category_id"`
	BrandID          string    `json:"brand_id"`
	BrandName        string    `json:"brand_name"`
	BasePrice        int64     `json:"base_price"`
	DiscountPrice    *int64    `json:"discount_price,omitempty"`
	Currency         string    `json:"currency"`
	IsActive         bool      `json:"is_active"`
	IsFeatured       bool      `json:"is_featured"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DocumentFromProduct flattens a catalog record into a search document.
// It is a pure function: no I/O, deterministic, and tolerant of absent
// optional relations (a missing brand or category leaves the corresponding
// fields empty rather than failing).
func DocumentFromProduct(p *Product) *SearchableProduct {
	doc := &SearchableProduct{
		ID:               p.ID,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SKU:              p.SKU,
		BasePrice:        p.BasePrice,
		DiscountPrice:    p.DiscountPrice,
		Currency:         p.Currency,
		IsActive:         p.IsActive,
		IsFeatured:       p.IsFeatured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	if p.CategoryID != nil {
		doc.CategoryID = *p.CategoryID
	}
	if p.Brand != nil {
		doc.BrandID = p.Brand.ID
		doc.BrandName = p.Brand.Name
	}

	return doc
}
