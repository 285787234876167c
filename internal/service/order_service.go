package service

import (
	"context"
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

// orderService implements OrderService.
type orderService struct {
	orderRepo  repository.OrderRepository
	couponRepo repository.CouponRepository
	carts      *cart.Resolver
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	couponRepo repository.CouponRepository,
	carts *cart.Resolver,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		couponRepo: couponRepo,
		carts:      carts,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

// Checkout creates an order from the caller's cart. Unit prices are
// snapshotted at checkout time; the order insert, item inserts and cart
// clear commit as one transaction.
func (s *orderService) Checkout(ctx context.Context, id identity.Identity) (*model.OrderResponse, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	items, err := s.carts.For(id).GetItems(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrEmptyCart
	}

	total := pricing.CartTotal(items)

	// The most recent usage is the applied coupon, mirroring the cart
	// summary.
	var couponCode *string
	discount := decimal.Zero
	coupon, _, err := s.couponRepo.LatestUsage(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if coupon != nil {
		couponCode = &coupon.Code
		discount = pricing.DiscountFor(coupon.DiscountType, coupon.DiscountValue, total)
	}

	now := time.Now()
	order := &model.Order{
		ID:         uuid.New(),
		UserID:     id.UserID,
		CouponCode: couponCode,
		Total:      pricing.FinalAmount(total, discount),
		Discount:   discount,
		CreatedAt:  now,
	}

	orderItems := make([]model.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, model.ErrTransactionFailed
	}
	defer tx.Rollback(ctx)

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, model.ErrTransactionFailed
	}
	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		return nil, model.ErrTransactionFailed
	}
	if err = s.orderRepo.ClearCart(ctx, tx, id.UserID); err != nil {
		return nil, model.ErrTransactionFailed
	}
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit checkout")
		return nil, model.ErrTransactionFailed
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", id.UserID.String()).
		Int("item_count", len(orderItems)).
		Msg("order created")

	return &model.OrderResponse{
		ID:         order.ID,
		Items:      orderItems,
		CouponCode: order.CouponCode,
		Total:      order.Total,
		Discount:   order.Discount,
		CreatedAt:  order.CreatedAt,
	}, nil
}

// GetByID retrieves one of the caller's orders.
func (s *orderService) GetByID(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*model.OrderResponse, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}

	order, items, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != id.UserID {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{
		ID:         order.ID,
		Items:      items,
		CouponCode: order.CouponCode,
		Total:      order.Total,
		Discount:   order.Discount,
		CreatedAt:  order.CreatedAt,
	}, nil
}
