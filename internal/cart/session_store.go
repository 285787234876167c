package cart

import (
	"context"
	"encoding/gob"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
)

// sessionKey is the session data key the cart lines live under.
const sessionKey = "cart_items"

// sessionLine is one (product, quantity) pair persisted in the session.
type sessionLine struct {
	ProductID string
	Quantity  int
}

func init() {
	gob.Register([]sessionLine{})
}

// sessionStore is the ephemeral cart strategy for anonymous identities.
// Lines live in the scs-managed server-side session keyed by the
// client's session cookie; nothing is written to per-user storage.
// Session data access is serialised by scs per session token, so cart
// mutations within one session do not race.
type sessionStore struct {
	sessions    *scs.SessionManager
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

func (s *sessionStore) lines(ctx context.Context) []sessionLine {
	if lines, ok := s.sessions.Get(ctx, sessionKey).([]sessionLine); ok {
		return lines
	}
	return nil
}

func (s *sessionStore) put(ctx context.Context, lines []sessionLine) {
	if len(lines) == 0 {
		s.sessions.Remove(ctx, sessionKey)
		return
	}
	s.sessions.Put(ctx, sessionKey, lines)
}

func (s *sessionStore) GetItems(ctx context.Context) ([]model.CartItemView, error) {
	lines := s.lines(ctx)

	ids := make([]string, len(lines))
	quantities := make(map[string]int, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
		quantities[line.ProductID] = line.Quantity
	}

	return hydrate(ctx, s.productRepo, ids, quantities)
}

func (s *sessionStore) AddItem(ctx context.Context, productID string, quantity int) (*model.CartItemView, error) {
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

	lines := s.lines(ctx)
	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			quantity = lines[i].Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, sessionLine{ProductID: productID, Quantity: quantity})
	}
	s.put(ctx, lines)

	s.logger.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("item added to session cart")

	return s.view(ctx, product, quantity)
}

func (s *sessionStore) RemoveItem(ctx context.Context, productID string) (*model.CartItemView, error) {
	lines := s.lines(ctx)
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}

		lines[i].Quantity--
		if lines[i].Quantity < 1 {
			s.put(ctx, append(lines[:i], lines[i+1:]...))
			return nil, nil
		}
		s.put(ctx, lines)

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}
		return s.view(ctx, product, lines[i].Quantity)
	}

	return nil, model.ErrItemNotFound
}

func (s *sessionStore) IncreaseItem(ctx context.Context, productID string) (*model.CartItemView, error) {
	lines := s.lines(ctx)
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}

		lines[i].Quantity++
		s.put(ctx, lines)

		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, model.ErrProductNotFound
		}
		return s.view(ctx, product, lines[i].Quantity)
	}

	return nil, model.ErrItemNotFound
}

func (s *sessionStore) Clear(ctx context.Context) error {
	s.sessions.Remove(ctx, sessionKey)
	return nil
}

func (s *sessionStore) view(ctx context.Context, product *model.Product, quantity int) (*model.CartItemView, error) {
	images, err := s.productRepo.GetImages(ctx, []string{product.ID})
	if err != nil {
		return nil, err
	}
	return &model.CartItemView{
		Product:  product.Summary(images[product.ID]),
		Quantity: quantity,
	}, nil
}
