package router

import (
	"net/http"

	"shopkart/internal/handler"
	"shopkart/internal/identity"
	"shopkart/internal/middleware"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	couponHandler *handler.CouponHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	blogHandler *handler.BlogHandler,
	sessions *scs.SessionManager,
	tokens *identity.TokenManager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Auth routes
	mux.HandleFunc("/auth/register", authHandler.Register)
	mux.HandleFunc("/auth/login", authHandler.Login)
	mux.HandleFunc("/auth/guest", authHandler.Guest)

	// Catalogue routes
	mux.HandleFunc("/products", productHandler.GetAll)
	mux.HandleFunc("/products/{id}", productHandler.GetByID)
	mux.HandleFunc("/products/{id}/reviews", reviewHandler.Handle)

	// Blog routes
	mux.HandleFunc("/blog/posts", blogHandler.Posts)
	mux.HandleFunc("/blog/posts/{slug}", blogHandler.GetPost)
	mux.HandleFunc("/blog/posts/{slug}/like", blogHandler.Like)
	mux.HandleFunc("/blog/posts/{slug}/unlike", blogHandler.Unlike)
	mux.HandleFunc("/blog/posts/{slug}/comments", blogHandler.Comments)
	mux.HandleFunc("/blog/comments/{id}", blogHandler.DeleteComment)

	// Cart routes
	mux.HandleFunc("/cart/get_items/", cartHandler.GetItems)
	mux.HandleFunc("/cart/add_item/", cartHandler.AddItem)
	mux.HandleFunc("/cart/remove_item/", cartHandler.RemoveItem)
	mux.HandleFunc("/cart/increase_item/", cartHandler.IncreaseItem)
	mux.HandleFunc("/cart/clear_cart/", cartHandler.ClearCart)
	mux.HandleFunc("/cart/summary/", cartHandler.Summary)

	// Coupon routes
	mux.HandleFunc("/coupon/validate/", couponHandler.Validate)
	mux.HandleFunc("/coupon/apply/", couponHandler.Apply)
	mux.HandleFunc("/coupon/remove/", couponHandler.Remove)
	mux.HandleFunc("/coupon/history/", couponHandler.History)
	mux.HandleFunc("/coupon/list/", couponHandler.List)

	// Order routes
	mux.HandleFunc("/orders/checkout/", orderHandler.Checkout)
	mux.HandleFunc("/orders/{id}", orderHandler.GetByID)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Session -> Identity
	var h http.Handler = mux
	h = middleware.Identity(tokens, logger)(h)
	h = sessions.LoadAndSave(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
