package service

import (
	"context"
	"strings"
	"time"

	"shopkart/internal/cart"
	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/pricing"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	carts      *cart.Resolver
	logger     zerolog.Logger
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, carts *cart.Resolver, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		carts:      carts,
		logger:     logger.With().Str("service", "coupon").Logger(),
	}
}

// normalizeCode trims and upper-cases a coupon code.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks the code, the caller's usage history and the cart
// total. It never mutates state.
func (s *couponService) Validate(ctx context.Context, id identity.Identity, code string) (*model.ValidationResult, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	code = normalizeCode(code)
	if code == "" {
		return nil, model.ErrEmptyCouponCode
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	if !coupon.IsValid() {
		return nil, model.ErrCouponInvalid
	}

	used, err := s.couponRepo.HasUsage(ctx, id.UserID, coupon.ID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, model.ErrCouponAlreadyUsed
	}

	total, err := s.cartTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	if total.Sign() <= 0 {
		return nil, model.ErrEmptyCart
	}

	discount := pricing.DiscountFor(coupon.DiscountType, coupon.DiscountValue, total)

	return &model.ValidationResult{
		Code:           coupon.Code,
		IsValid:        true,
		CanUse:         true,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		RemainingCount: coupon.RemainingCount(),
		CartTotal:      total,
		DiscountAmount: discount,
		FinalAmount:    pricing.FinalAmount(total, discount),
	}, nil
}

// Apply re-runs every validation check, then redeems the coupon. The
// usage insert and the used_count increment run in one transaction
// against a row-locked coupon, so a failure partway leaves neither
// record changed and concurrent applies cannot oversubscribe the cap.
func (s *couponService) Apply(ctx context.Context, id identity.Identity, code string) (*model.ApplyResult, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	code = normalizeCode(code)
	if code == "" {
		return nil, model.ErrEmptyCouponCode
	}

	// Same checks in the same order as Validate, so both report the
	// same failure for the same state. The locked re-read below is the
	// authoritative one.
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}
	if !coupon.IsValid() {
		return nil, model.ErrCouponInvalid
	}

	used, err := s.couponRepo.HasUsage(ctx, id.UserID, coupon.ID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, model.ErrCouponAlreadyUsed
	}

	total, err := s.cartTotal(ctx, id)
	if err != nil {
		return nil, err
	}
	if total.Sign() <= 0 {
		return nil, model.ErrEmptyCart
	}

	tx, err := s.couponRepo.BeginTx(ctx)
	if err != nil {
		return nil, model.ErrTransactionFailed
	}
	defer tx.Rollback(ctx)

	coupon, err = s.couponRepo.GetByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, model.ErrTransactionFailed
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}
	if !coupon.IsValid() {
		return nil, model.ErrCouponInvalid
	}

	usage := &model.CouponUsage{
		ID:       uuid.New(),
		UserID:   id.UserID,
		CouponID: coupon.ID,
		UsedAt:   time.Now(),
	}
	if err = s.couponRepo.InsertUsage(ctx, tx, usage); err != nil {
		if err == model.ErrCouponAlreadyUsed {
			return nil, err
		}
		return nil, model.ErrTransactionFailed
	}

	if err = s.couponRepo.IncrementUsedCount(ctx, tx, coupon.ID); err != nil {
		return nil, model.ErrTransactionFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to commit coupon application")
		return nil, model.ErrTransactionFailed
	}

	coupon.UsedCount++
	discount := pricing.DiscountFor(coupon.DiscountType, coupon.DiscountValue, total)

	s.logger.Info().
		Str("code", coupon.Code).
		Str("user_id", id.UserID.String()).
		Int("remaining", coupon.RemainingCount()).
		Msg("coupon applied")

	return &model.ApplyResult{
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountValue:  coupon.DiscountValue,
		CartTotal:      total,
		DiscountAmount: discount,
		FinalAmount:    pricing.FinalAmount(total, discount),
		RemainingCount: coupon.RemainingCount(),
	}, nil
}

// Remove deletes the caller's usage row and restores used_count in one
// transaction.
func (s *couponService) Remove(ctx context.Context, id identity.Identity, code string) error {
	if !id.HasUser() {
		return model.ErrAuthRequired
	}

	code = normalizeCode(code)
	if code == "" {
		return model.ErrEmptyCouponCode
	}

	tx, err := s.couponRepo.BeginTx(ctx)
	if err != nil {
		return model.ErrTransactionFailed
	}
	defer tx.Rollback(ctx)

	coupon, err := s.couponRepo.GetByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return model.ErrTransactionFailed
	}
	if coupon == nil {
		return model.ErrUsageNotFound
	}

	deleted, err := s.couponRepo.DeleteUsage(ctx, tx, id.UserID, coupon.ID)
	if err != nil {
		return model.ErrTransactionFailed
	}
	if !deleted {
		return model.ErrUsageNotFound
	}

	if err = s.couponRepo.DecrementUsedCount(ctx, tx, coupon.ID); err != nil {
		return model.ErrTransactionFailed
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("code", code).Msg("failed to commit coupon removal")
		return model.ErrTransactionFailed
	}

	s.logger.Info().
		Str("code", code).
		Str("user_id", id.UserID.String()).
		Msg("coupon removed")

	return nil
}

// History lists the caller's redemptions, newest first.
func (s *couponService) History(ctx context.Context, id identity.Identity) ([]model.CouponUsageView, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}
	return s.couponRepo.History(ctx, id.UserID)
}

// ListActive lists all active coupons.
func (s *couponService) ListActive(ctx context.Context) ([]model.Coupon, error) {
	return s.couponRepo.ListActive(ctx)
}

func (s *couponService) cartTotal(ctx context.Context, id identity.Identity) (decimal.Decimal, error) {
	items, err := s.carts.For(id).GetItems(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.CartTotal(items), nil
}
