package handler

import (
	"net/http"

	"shopkart/internal/identity"
	"shopkart/internal/service"
	"shopkart/internal/validate"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// addItemRequest is the payload for adding an item to the cart.
type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty"`
}

// itemRequest is the payload for operations on an existing cart line.
type itemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// GetItems handles GET /cart/get_items/ requests.
func (h *CartHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items, err := h.service.GetItems(r.Context(), identity.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, items, "Cart items retrieved successfully")
}

// AddItem handles POST /cart/add_item/ requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.service.AddItem(r.Context(), identity.FromContext(r.Context()), req.ProductID, quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, item, "Item added to cart successfully")
}

// RemoveItem handles POST /cart/remove_item/ requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	item, err := h.service.RemoveItem(r.Context(), identity.FromContext(r.Context()), req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if item == nil {
		writeSuccess(w, http.StatusOK, nil, "Item removed from cart (quantity was 1)")
		return
	}
	writeSuccess(w, http.StatusOK, item, "Item quantity decreased successfully")
}

// IncreaseItem handles POST /cart/increase_item/ requests.
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	item, err := h.service.IncreaseItem(r.Context(), identity.FromContext(r.Context()), req.ProductID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, item, "Item quantity increased successfully")
}

// ClearCart handles POST and DELETE /cart/clear_cart/ requests.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), identity.FromContext(r.Context())); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Cart cleared successfully")
}

// Summary handles GET /cart/summary/ requests.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	summary, err := h.service.Summary(r.Context(), identity.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, summary, "Cart summary retrieved successfully")
}
