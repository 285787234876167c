package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a persisted per-user cart. Session-backed carts have no Cart
// row; they share only the CartItemView shape.
type Cart struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartItem is one line of a persisted cart. Quantity is always >= 1; a
// line that would reach zero is deleted instead.
type CartItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	CartID    uuid.UUID `json:"-" db:"cart_id"`
	ProductID string    `json:"-" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// CartItemView is the externally visible shape of a cart line, shared by
// both cart storage strategies.
type CartItemView struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
}

// AppliedCoupon describes the coupon surfaced on a cart summary.
type AppliedCoupon struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	UsedAt        time.Time       `json:"used_at"`
}

// CartSummary is the response shape of the cart summary endpoint.
type CartSummary struct {
	Items          []CartItemView  `json:"items"`
	CartTotal      decimal.Decimal `json:"cart_total"`
	AppliedCoupon  *AppliedCoupon  `json:"applied_coupon"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	ItemCount      int             `json:"item_count"`
}
