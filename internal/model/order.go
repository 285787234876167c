package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a checked-out cart. Totals and unit prices are snapshots
// taken at checkout time.
type Order struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"-" db:"user_id"`
	CouponCode *string         `json:"coupon_code,omitempty" db:"coupon_code"`
	Total      decimal.Decimal `json:"total" db:"total"`
	Discount   decimal.Decimal `json:"discount" db:"discount"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// OrderItem is a line item in an order.
type OrderItem struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	ProductID string          `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
}

// OrderResponse is the response payload for an order.
type OrderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Items      []OrderItem     `json:"items"`
	CouponCode *string         `json:"coupon_code,omitempty"`
	Total      decimal.Decimal `json:"total"`
	Discount   decimal.Decimal `json:"discount"`
	CreatedAt  time.Time       `json:"created_at"`
}
