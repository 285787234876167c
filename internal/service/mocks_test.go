package service

import (
	"context"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetActiveByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetImages(ctx context.Context, productIDs []string) (map[string][]model.ProductImage, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]model.ProductImage), args.Error(1)
}

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) IncrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) DecrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, bool, error) {
	args := m.Called(ctx, userID, productID)
	var item *model.CartItem
	if args.Get(0) != nil {
		item = args.Get(0).(*model.CartItem)
	}
	return item, args.Bool(1), args.Error(2)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockCouponRepository is a mock implementation of repository.CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	args := m.Called(ctx, tx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) HasUsage(ctx context.Context, userID, couponID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, couponID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) InsertUsage(ctx context.Context, tx pgx.Tx, usage *model.CouponUsage) error {
	args := m.Called(ctx, tx, usage)
	return args.Error(0)
}

func (m *MockCouponRepository) IncrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	args := m.Called(ctx, tx, couponID)
	return args.Error(0)
}

func (m *MockCouponRepository) DeleteUsage(ctx context.Context, tx pgx.Tx, userID, couponID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, userID, couponID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCouponRepository) DecrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	args := m.Called(ctx, tx, couponID)
	return args.Error(0)
}

func (m *MockCouponRepository) LatestUsage(ctx context.Context, userID uuid.UUID) (*model.Coupon, *model.CouponUsage, error) {
	args := m.Called(ctx, userID)
	var coupon *model.Coupon
	var usage *model.CouponUsage
	if args.Get(0) != nil {
		coupon = args.Get(0).(*model.Coupon)
	}
	if args.Get(1) != nil {
		usage = args.Get(1).(*model.CouponUsage)
	}
	return coupon, usage, args.Error(2)
}

func (m *MockCouponRepository) History(ctx context.Context, userID uuid.UUID) ([]model.CouponUsageView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CouponUsageView), args.Error(1)
}

func (m *MockCouponRepository) ListActive(ctx context.Context) ([]model.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Upsert(ctx context.Context, coupon *model.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) ClearCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, productID string, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID string) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

// MockBlogRepository is a mock implementation of repository.BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) CreatePost(ctx context.Context, post *model.BlogPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBlogRepository) ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error) {
	args := m.Called(ctx, category, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) ViewPost(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogRepository) Like(ctx context.Context, postID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockBlogRepository) Unlike(ctx context.Context, postID uuid.UUID) (int, bool, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockBlogRepository) CreateComment(ctx context.Context, comment *model.BlogComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockBlogRepository) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlogRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]model.BlogComment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogComment), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
