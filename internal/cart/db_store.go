package cart

import (
	"context"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dbStore is the persisted cart strategy. All quantity arithmetic
// happens in the database so concurrent requests never lose updates.
type dbStore struct {
	userID      uuid.UUID
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

func (s *dbStore) GetItems(ctx context.Context) ([]model.CartItemView, error) {
	items, err := s.cartRepo.GetItems(ctx, s.userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	quantities := make(map[string]int, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
		quantities[item.ProductID] = item.Quantity
	}

	return hydrate(ctx, s.productRepo, ids, quantities)
}

func (s *dbStore) AddItem(ctx context.Context, productID string, quantity int) (*model.CartItemView, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	item, err := s.cartRepo.UpsertItem(ctx, s.userID, productID, quantity)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("user_id", s.userID.String()).
		Str("product_id", productID).
		Int("quantity", item.Quantity).
		Msg("item added to cart")

	return s.view(ctx, product, item.Quantity)
}

func (s *dbStore) RemoveItem(ctx context.Context, productID string) (*model.CartItemView, error) {
	item, found, err := s.cartRepo.DecrementItem(ctx, s.userID, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, model.ErrItemNotFound
	}
	if item == nil {
		// Line reached zero and was deleted.
		return nil, nil
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return s.view(ctx, product, item.Quantity)
}

func (s *dbStore) IncreaseItem(ctx context.Context, productID string) (*model.CartItemView, error) {
	item, err := s.cartRepo.IncrementItem(ctx, s.userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, model.ErrItemNotFound
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return s.view(ctx, product, item.Quantity)
}

func (s *dbStore) Clear(ctx context.Context) error {
	return s.cartRepo.Clear(ctx, s.userID)
}

func (s *dbStore) view(ctx context.Context, product *model.Product, quantity int) (*model.CartItemView, error) {
	images, err := s.productRepo.GetImages(ctx, []string{product.ID})
	if err != nil {
		return nil, err
	}
	return &model.CartItemView{
		Product:  product.Summary(images[product.ID]),
		Quantity: quantity,
	}, nil
}
