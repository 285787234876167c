package service

import (
	"context"

	"shopkart/internal/cart"
	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/pricing"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService on top of the cart store resolver.
type cartService struct {
	carts      *cart.Resolver
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts *cart.Resolver, couponRepo repository.CouponRepository, logger zerolog.Logger) CartService {
	return &cartService{
		carts:      carts,
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) GetItems(ctx context.Context, id identity.Identity) ([]model.CartItemView, error) {
	return s.carts.For(id).GetItems(ctx)
}

func (s *cartService) AddItem(ctx context.Context, id identity.Identity, productID string, quantity int) (*model.CartItemView, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}
	return s.carts.For(id).AddItem(ctx, productID, quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}
	return s.carts.For(id).RemoveItem(ctx, productID)
}

func (s *cartService) IncreaseItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error) {
	if productID == "" {
		return nil, model.ErrMissingProductID
	}
	return s.carts.For(id).IncreaseItem(ctx, productID)
}

func (s *cartService) Clear(ctx context.Context, id identity.Identity) error {
	return s.carts.For(id).Clear(ctx)
}

// Summary composes the cart items, their total, and the caller's most
// recent coupon usage as the applied coupon. Recency is the only signal
// for "applied": there is no per-cart coupon selection state, so a
// usage from an earlier session still surfaces here until it is
// removed.
func (s *cartService) Summary(ctx context.Context, id identity.Identity) (*model.CartSummary, error) {
	items, err := s.carts.For(id).GetItems(ctx)
	if err != nil {
		return nil, err
	}

	total := pricing.CartTotal(items)
	summary := &model.CartSummary{
		Items:          items,
		CartTotal:      total,
		DiscountAmount: decimal.Zero,
		FinalAmount:    total,
		ItemCount:      len(items),
	}

	if !id.HasUser() {
		return summary, nil
	}

	coupon, usage, err := s.couponRepo.LatestUsage(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return summary, nil
	}

	discount := pricing.DiscountFor(coupon.DiscountType, coupon.DiscountValue, total)
	summary.AppliedCoupon = &model.AppliedCoupon{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
		UsedAt:        usage.UsedAt,
	}
	summary.DiscountAmount = discount
	summary.FinalAmount = pricing.FinalAmount(total, discount)

	return summary, nil
}
