// Package cart implements the cart engine. Two storage strategies sit
// behind one Store interface: carts for identities with a user row are
// persisted in PostgreSQL, anonymous carts live in the server-side
// session and are never written to durable per-user storage. Call sites
// obtain a Store from the Resolver and never branch on identity kind.
package cart

import (
	"context"

	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
)

// Store is one identity's cart. Both strategies expose the same
// operations and the same CartItemView shape.
type Store interface {
	// GetItems returns all items in the cart. It never creates a cart as
	// a side effect of reading.
	GetItems(ctx context.Context) ([]model.CartItemView, error)

	// AddItem adds quantity of a product, merging into an existing line.
	// Fails with model.ErrProductNotFound for unknown or inactive
	// products and model.ErrInvalidQuantity for quantity < 1.
	AddItem(ctx context.Context, productID string, quantity int) (*model.CartItemView, error)

	// RemoveItem decrements a line by one, deleting it at zero. Returns
	// nil when the line was deleted. Fails with model.ErrItemNotFound
	// when no such line exists.
	RemoveItem(ctx context.Context, productID string) (*model.CartItemView, error)

	// IncreaseItem increments an existing line by one. It never creates
	// a line; fails with model.ErrItemNotFound when none exists.
	IncreaseItem(ctx context.Context, productID string) (*model.CartItemView, error)

	// Clear removes all items. Idempotent on an absent or empty cart.
	Clear(ctx context.Context) error
}

// Resolver selects the storage strategy for an identity.
type Resolver struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	sessions    *scs.SessionManager
	logger      zerolog.Logger
}

// NewResolver creates a cart store resolver.
func NewResolver(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	sessions *scs.SessionManager,
	logger zerolog.Logger,
) *Resolver {
	return &Resolver{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// For returns the cart store backing the given identity: persisted for
// identities with a user row, session-backed otherwise.
func (r *Resolver) For(id identity.Identity) Store {
	if id.HasUser() {
		return &dbStore{
			userID:      id.UserID,
			cartRepo:    r.cartRepo,
			productRepo: r.productRepo,
			logger:      r.logger.With().Str("cart_store", "db").Logger(),
		}
	}
	return &sessionStore{
		sessions:    r.sessions,
		productRepo: r.productRepo,
		logger:      r.logger.With().Str("cart_store", "session").Logger(),
	}
}

// hydrate turns (product id, quantity) lines into CartItemViews,
// preserving line order.
func hydrate(ctx context.Context, productRepo repository.ProductRepository, ids []string, quantities map[string]int) ([]model.CartItemView, error) {
	views := []model.CartItemView{}
	if len(ids) == 0 {
		return views, nil
	}

	products, err := productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	images, err := productRepo.GetImages(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			// Product removed from the catalogue after it was added;
			// skip the line rather than fail the whole read.
			continue
		}
		views = append(views, model.CartItemView{
			Product:  p.Summary(images[id]),
			Quantity: quantities[id],
		})
	}

	return views, nil
}
