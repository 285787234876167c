// Package pricing derives cart totals and coupon discounts. All
// arithmetic uses decimals and results are rounded to two places,
// half-up, before being returned.
package pricing

import (
	"shopkart/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CartTotal sums price x quantity over the cart lines, using each
// product's current price. Prices can drift between add and checkout;
// callers wanting a snapshot must take one themselves.
func CartTotal(items []model.CartItemView) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

// DiscountFor computes the discount a coupon grants on the given amount.
// Percentage discounts are clamped at 100%; fixed discounts are clamped
// at the amount itself. The result is never negative.
func DiscountFor(discountType string, discountValue, amount decimal.Decimal) decimal.Decimal {
	if amount.Sign() <= 0 || discountValue.Sign() <= 0 {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch discountType {
	case model.DiscountPercentage:
		pct := decimal.Min(discountValue, hundred)
		discount = amount.Mul(pct).Div(hundred)
	case model.DiscountFixed:
		discount = decimal.Min(discountValue, amount)
	default:
		return decimal.Zero
	}

	return discount.Round(2)
}

// FinalAmount applies the discount to the amount, floored at zero.
func FinalAmount(amount, discount decimal.Decimal) decimal.Decimal {
	final := amount.Sub(discount)
	if final.Sign() < 0 {
		return decimal.Zero
	}
	return final.Round(2)
}
