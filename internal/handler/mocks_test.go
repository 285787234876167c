package handler

import (
	"context"

	"shopkart/internal/identity"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetItems(ctx context.Context, id identity.Identity) ([]model.CartItemView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItemView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, id identity.Identity, productID string, quantity int) (*model.CartItemView, error) {
	args := m.Called(ctx, id, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItemView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error) {
	args := m.Called(ctx, id, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItemView), args.Error(1)
}

func (m *MockCartService) IncreaseItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error) {
	args := m.Called(ctx, id, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItemView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, id identity.Identity) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartService) Summary(ctx context.Context, id identity.Identity) (*model.CartSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartSummary), args.Error(1)
}

// MockCouponService is a mock implementation of service.CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Validate(ctx context.Context, id identity.Identity, code string) (*model.ValidationResult, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ValidationResult), args.Error(1)
}

func (m *MockCouponService) Apply(ctx context.Context, id identity.Identity, code string) (*model.ApplyResult, error) {
	args := m.Called(ctx, id, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApplyResult), args.Error(1)
}

func (m *MockCouponService) Remove(ctx context.Context, id identity.Identity, code string) error {
	args := m.Called(ctx, id, code)
	return args.Error(0)
}

func (m *MockCouponService) History(ctx context.Context, id identity.Identity) ([]model.CouponUsageView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CouponUsageView), args.Error(1)
}

func (m *MockCouponService) ListActive(ctx context.Context) ([]model.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, name, password string) (*model.AuthResponse, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Guest(ctx context.Context) (*model.AuthResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, []model.ProductImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var images []model.ProductImage
	if args.Get(1) != nil {
		images = args.Get(1).([]model.ProductImage)
	}
	return args.Get(0).(*model.Product), images, args.Error(2)
}

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, id identity.Identity) (*model.OrderResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*model.OrderResponse, error) {
	args := m.Called(ctx, id, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, id identity.Identity, productID string, rating int, comment string) (*model.Review, error) {
	args := m.Called(ctx, id, productID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, id identity.Identity, productID string) error {
	args := m.Called(ctx, id, productID)
	return args.Error(0)
}

// MockBlogService is a mock implementation of service.BlogService.
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) CreatePost(ctx context.Context, id identity.Identity, title, content, category, tags string) (*model.BlogPost, error) {
	args := m.Called(ctx, id, title, content, category, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogService) ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *MockBlogService) GetPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogService) Like(ctx context.Context, id identity.Identity, slug string) (int, error) {
	args := m.Called(ctx, id, slug)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogService) Unlike(ctx context.Context, id identity.Identity, slug string) (int, error) {
	args := m.Called(ctx, id, slug)
	return args.Int(0), args.Error(1)
}

func (m *MockBlogService) ListComments(ctx context.Context, slug string) ([]model.BlogComment, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogComment), args.Error(1)
}

func (m *MockBlogService) CreateComment(ctx context.Context, id identity.Identity, slug, text string) (*model.BlogComment, error) {
	args := m.Called(ctx, id, slug, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogComment), args.Error(1)
}

func (m *MockBlogService) DeleteComment(ctx context.Context, id identity.Identity, commentID uuid.UUID) error {
	args := m.Called(ctx, id, commentID)
	return args.Error(0)
}
