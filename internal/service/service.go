package service

import (
	"context"

	"shopkart/internal/identity"
	"shopkart/internal/model"

	"github.com/google/uuid"
)

// CartService defines cart operations for any resolved identity.
type CartService interface {
	// GetItems retrieves the identity's cart items without creating a cart.
	GetItems(ctx context.Context, id identity.Identity) ([]model.CartItemView, error)

	// AddItem adds quantity of a product, merging into an existing line.
	AddItem(ctx context.Context, id identity.Identity, productID string, quantity int) (*model.CartItemView, error)

	// RemoveItem decrements a line by one, deleting it at zero. The
	// returned view is nil when the line was deleted.
	RemoveItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error)

	// IncreaseItem increments an existing line by one.
	IncreaseItem(ctx context.Context, id identity.Identity, productID string) (*model.CartItemView, error)

	// Clear removes all items; idempotent.
	Clear(ctx context.Context, id identity.Identity) error

	// Summary returns items, totals and the applied coupon, if any.
	Summary(ctx context.Context, id identity.Identity) (*model.CartSummary, error)
}

// CouponService defines coupon ledger operations. All operations except
// ListActive require an identity with a user row.
type CouponService interface {
	// Validate checks a code against the ledger and the caller's cart
	// without mutating state.
	Validate(ctx context.Context, id identity.Identity, code string) (*model.ValidationResult, error)

	// Apply redeems a code: one usage row and one used_count increment,
	// committed together or not at all.
	Apply(ctx context.Context, id identity.Identity, code string) (*model.ApplyResult, error)

	// Remove deletes the caller's usage of a code and restores the
	// coupon's used_count, atomically.
	Remove(ctx context.Context, id identity.Identity, code string) error

	// History lists the caller's redemptions, newest first.
	History(ctx context.Context, id identity.Identity) ([]model.CouponUsageView, error)

	// ListActive lists all active coupons.
	ListActive(ctx context.Context) ([]model.Coupon, error)
}

// ProductService defines operations for catalogue reads.
type ProductService interface {
	// GetAll retrieves active products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a product with its active images.
	GetByID(ctx context.Context, id string) (*model.Product, []model.ProductImage, error)
}

// AuthService defines account and token operations.
type AuthService interface {
	// Register creates an account and returns a bearer token for it.
	Register(ctx context.Context, email, name, password string) (*model.AuthResponse, error)

	// Login verifies credentials and returns a bearer token.
	Login(ctx context.Context, email, password string) (*model.AuthResponse, error)

	// Guest creates a guest account and returns a guest bearer token.
	Guest(ctx context.Context) (*model.AuthResponse, error)
}

// OrderService defines checkout operations.
type OrderService interface {
	// Checkout creates an order from the caller's cart, snapshotting
	// prices and clearing the cart in the same transaction.
	Checkout(ctx context.Context, id identity.Identity) (*model.OrderResponse, error)

	// GetByID retrieves one of the caller's orders.
	GetByID(ctx context.Context, id identity.Identity, orderID uuid.UUID) (*model.OrderResponse, error)
}

// BlogService defines blog post and comment operations. Reads are open;
// every write requires an identity with a user row.
type BlogService interface {
	// CreatePost publishes a post authored by the caller, deriving the
	// slug from the title.
	CreatePost(ctx context.Context, id identity.Identity, title, content, category, tags string) (*model.BlogPost, error)

	// ListPosts lists active posts, newest first, optionally filtered
	// by category.
	ListPosts(ctx context.Context, category string, limit, offset int) ([]model.BlogPost, error)

	// GetPost retrieves a post by slug, counting the read as a view.
	GetPost(ctx context.Context, slug string) (*model.BlogPost, error)

	// Like increments a post's like counter and returns the new value.
	Like(ctx context.Context, id identity.Identity, slug string) (int, error)

	// Unlike decrements a post's like counter, floored at zero.
	Unlike(ctx context.Context, id identity.Identity, slug string) (int, error)

	// ListComments lists a post's comments, newest first.
	ListComments(ctx context.Context, slug string) ([]model.BlogComment, error)

	// CreateComment adds the caller's comment to a post.
	CreateComment(ctx context.Context, id identity.Identity, slug, text string) (*model.BlogComment, error)

	// DeleteComment removes one of the caller's comments.
	DeleteComment(ctx context.Context, id identity.Identity, commentID uuid.UUID) error
}

// ReviewService defines product review operations.
type ReviewService interface {
	// ListByProduct lists a product's reviews, newest first.
	ListByProduct(ctx context.Context, productID string) ([]model.Review, error)

	// Create adds the caller's review of a product.
	Create(ctx context.Context, id identity.Identity, productID string, rating int, comment string) (*model.Review, error)

	// Delete removes the caller's review of a product.
	Delete(ctx context.Context, id identity.Identity, productID string) error
}
