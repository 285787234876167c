package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalogue product.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	IsActive    bool            `json:"is_active" db:"is_active"`
	ReviewCount int             `json:"review_count" db:"review_count"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// ProductImage is one image of a product, ordered by Position.
type ProductImage struct {
	ID        uuid.UUID `json:"-" db:"id"`
	ProductID string    `json:"-" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"position" db:"position"`
	IsActive  bool      `json:"-" db:"is_active"`
}

// ProductSummary is the product shape embedded in cart and order views.
type ProductSummary struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Image  *string         `json:"image"`
	Images []ProductImage  `json:"images,omitempty"`
}

// Summary builds a ProductSummary from a product and its active images.
// The primary image is the one at position 1, falling back to the first
// active image.
func (p *Product) Summary(images []ProductImage) ProductSummary {
	s := ProductSummary{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Images: images,
	}
	for i := range images {
		if images[i].Position == 1 {
			s.Image = &images[i].URL
			return s
		}
	}
	if len(images) > 0 {
		s.Image = &images[0].URL
	}
	return s
}
