package service

import (
	"context"

	"shopkart/internal/model"
	"shopkart/internal/repository"

	"github.com/rs/zerolog"
)

// Pagination defaults for product listings.
const (
	defaultLimit = 50
	maxLimit     = 100
)

// productService implements ProductService.
type productService struct {
	repo   repository.ProductRepository
	logger zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		repo:   repo,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves active products with pagination.
func (s *productService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.repo.GetAll(ctx, limit, offset)
}

// GetByID retrieves a product with its active images.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, []model.ProductImage, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, model.ErrProductNotFound
	}

	images, err := s.repo.GetImages(ctx, []string{id})
	if err != nil {
		return nil, nil, err
	}

	return product, images[id], nil
}
