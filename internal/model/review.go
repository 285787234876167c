package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is one user's review of a product. A user reviews a product at
// most once; the product's review_count is updated in the same
// transaction as the review row.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID string    `json:"product_id" db:"product_id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
