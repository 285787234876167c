package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Coupon is a global coupon definition. Codes are stored upper-cased and
// unique. UsedCount is maintained in the same transaction as the usage
// row it accounts for.
type Coupon struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	Description   string          `json:"description" db:"description"`
	DiscountType  string          `json:"discount_type" db:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value" db:"discount_value"`
	TotalCount    int             `json:"total_count" db:"total_count"`
	UsedCount     int             `json:"used_count" db:"used_count"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// RemainingCount returns how many redemptions are left, floored at zero.
func (c *Coupon) RemainingCount() int {
	if c.UsedCount >= c.TotalCount {
		return 0
	}
	return c.TotalCount - c.UsedCount
}

// IsValid reports whether the coupon is active with redemptions left.
func (c *Coupon) IsValid() bool {
	return c.IsActive && c.RemainingCount() > 0
}

// CouponUsage records one redemption of a coupon by a user. At most one
// row exists per (user, coupon), enforced by a DB constraint.
type CouponUsage struct {
	ID       uuid.UUID `json:"-" db:"id"`
	UserID   uuid.UUID `json:"-" db:"user_id"`
	CouponID uuid.UUID `json:"-" db:"coupon_id"`
	UsedAt   time.Time `json:"used_at" db:"used_at"`
}

// CouponUsageView is a usage joined with its coupon, for history listings.
type CouponUsageView struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	UsedAt        time.Time       `json:"used_at"`
}

// ValidationResult is returned by coupon validation. Validation never
// mutates state.
type ValidationResult struct {
	Code           string          `json:"code"`
	IsValid        bool            `json:"is_valid"`
	CanUse         bool            `json:"can_use"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	RemainingCount int             `json:"remaining_count"`
	CartTotal      decimal.Decimal `json:"cart_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

// ApplyResult is returned by a successful coupon application.
type ApplyResult struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	CartTotal      decimal.Decimal `json:"cart_total"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
	RemainingCount int             `json:"remaining_count"`
}
