package repository

import (
	"context"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves active products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetActiveByID retrieves an active product by its ID. Returns nil
	// when the product does not exist or is inactive.
	GetActiveByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// GetImages retrieves active images for the given products, keyed by
	// product ID and ordered by position.
	GetImages(ctx context.Context, productIDs []string) (map[string][]model.ProductImage, error)
}

// CartRepository defines the interface for persisted cart data access.
// Every mutation is atomic at the row level so concurrent requests
// against the same (cart, product) never lose an update.
type CartRepository interface {
	// GetItems retrieves all items of the user's cart. Returns an empty
	// slice when no cart exists; never creates a cart.
	GetItems(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)

	// UpsertItem adds quantity to the user's cart line for the product,
	// creating the cart and the line as needed. The increment happens in
	// the database, not in application memory.
	UpsertItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) (*model.CartItem, error)

	// IncrementItem increases an existing line's quantity by one.
	// Returns nil when no such line exists; never creates a line.
	IncrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, error)

	// DecrementItem decreases an existing line's quantity by one,
	// deleting the line when it would reach zero. The bool reports
	// whether a line existed; the item is nil when the line was deleted.
	DecrementItem(ctx context.Context, userID uuid.UUID, productID string) (*model.CartItem, bool, error)

	// Clear deletes all items of the user's cart. No-op when the cart is
	// absent or empty.
	Clear(ctx context.Context, userID uuid.UUID) error
}

// CouponRepository defines the interface for coupon and usage data
// access. Apply and remove run inside a caller-held transaction so the
// usage write and the used_count update commit or roll back together.
type CouponRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetByCode retrieves a coupon by its (upper-cased) code. Returns
	// nil when no such coupon exists.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByCodeForUpdate retrieves a coupon by code with a row lock,
	// within the provided transaction.
	GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error)

	// HasUsage reports whether the user has already redeemed the coupon.
	HasUsage(ctx context.Context, userID, couponID uuid.UUID) (bool, error)

	// InsertUsage inserts a usage row within the provided transaction.
	// Returns model.ErrCouponAlreadyUsed on a uniqueness violation.
	InsertUsage(ctx context.Context, tx pgx.Tx, usage *model.CouponUsage) error

	// IncrementUsedCount increments the coupon's used_count within the
	// provided transaction.
	IncrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error

	// DeleteUsage deletes the user's usage row within the provided
	// transaction. Returns false when no usage existed.
	DeleteUsage(ctx context.Context, tx pgx.Tx, userID, couponID uuid.UUID) (bool, error)

	// DecrementUsedCount decrements the coupon's used_count, floored at
	// zero, within the provided transaction.
	DecrementUsedCount(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error

	// LatestUsage retrieves the user's most recent usage joined with its
	// coupon. Returns nil when the user has no usages.
	LatestUsage(ctx context.Context, userID uuid.UUID) (*model.Coupon, *model.CouponUsage, error)

	// History retrieves the user's usages, most recent first.
	History(ctx context.Context, userID uuid.UUID) ([]model.CouponUsageView, error)

	// ListActive retrieves all active coupons, newest first.
	ListActive(ctx context.Context) ([]model.Coupon, error)

	// Upsert inserts or updates a coupon definition by code. Used by the
	// bulk importer; used_count is preserved on update.
	Upsert(ctx context.Context, coupon *model.Coupon) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil when not found.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ClearCart deletes the user's cart items within the provided
	// transaction, so checkout empties the cart atomically with the
	// order insert.
	ClearCart(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)
}

// BlogRepository defines the interface for blog data access. Comment
// writes update the post's denormalized comment_count in the same
// transaction as the comment row; view and like counters mutate in
// single atomic statements.
type BlogRepository interface {
	// CreatePost inserts a blog post. Returns model.ErrSlugTaken when
	// the slug is already in use.
	CreatePost(ctx context.Context, post *model.BlogPost) error

	// ListPosts retrieves active posts, newest first, optionally
	// filtered by category.
	ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error)

	// GetBySlug retrieves an active post by slug. Returns nil when no
	// such post exists.
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)

	// ViewPost retrieves an active post by slug and increments its
	// view_count in the same statement. Returns nil when no such post
	// exists.
	ViewPost(ctx context.Context, slug string) (*model.BlogPost, error)

	// Like increments the post's like_count and returns the new value.
	// The bool reports whether the post existed.
	Like(ctx context.Context, postID uuid.UUID) (int, bool, error)

	// Unlike decrements the post's like_count, floored at zero, and
	// returns the new value. The bool reports whether the post existed.
	Unlike(ctx context.Context, postID uuid.UUID) (int, bool, error)

	// CreateComment inserts a comment and increments the post's
	// comment_count atomically.
	CreateComment(ctx context.Context, comment *model.BlogComment) error

	// DeleteComment removes the user's comment and decrements the post's
	// comment_count atomically. Returns false when no such comment
	// belongs to the user.
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) (bool, error)

	// ListComments retrieves a post's comments, newest first.
	ListComments(ctx context.Context, postID uuid.UUID) ([]model.BlogComment, error)
}

// ReviewRepository defines the interface for review data access. Review
// writes update the product's denormalized review_count in the same
// transaction as the review row.
type ReviewRepository interface {
	// Create inserts a review and increments the product's review_count
	// atomically. Returns model.ErrReviewExists when the user already
	// reviewed the product.
	Create(ctx context.Context, review *model.Review) error

	// Delete removes the user's review of the product and decrements the
	// product's review_count atomically. Returns false when no review
	// existed.
	Delete(ctx context.Context, productID string, userID uuid.UUID) (bool, error)

	// ListByProduct retrieves all reviews of a product, newest first.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)
}
