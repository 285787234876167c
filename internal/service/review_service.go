package service

import (
	"context"
	"time"

	"shopkart/internal/identity"
	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// ListByProduct lists a product's reviews, newest first.
func (s *reviewService) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return s.reviewRepo.ListByProduct(ctx, productID)
}

// Create adds the caller's review of a product. The review insert and
// the product's review_count increment commit together.
func (s *reviewService) Create(ctx context.Context, id identity.Identity, productID string, rating int, comment string) (*model.Review, error) {
	if !id.HasUser() {
		return nil, model.ErrAuthRequired
	}
	if rating < 1 || rating > 5 {
		return nil, model.ErrInvalidRating
	}

	product, err := s.productRepo.GetActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	review := &model.Review{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    id.UserID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", productID).
		Str("user_id", id.UserID.String()).
		Int("rating", rating).
		Msg("review created")

	return review, nil
}

// Delete removes the caller's review of a product.
func (s *reviewService) Delete(ctx context.Context, id identity.Identity, productID string) error {
	if !id.HasUser() {
		return model.ErrAuthRequired
	}

	deleted, err := s.reviewRepo.Delete(ctx, productID, id.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrReviewNotFound
	}

	return nil
}
