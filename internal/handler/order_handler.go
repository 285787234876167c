package handler

import (
	"net/http"

	"shopkart/internal/identity"
	"shopkart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /orders/checkout/ requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), identity.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, order, "Order created successfully")
}

// GetByID handles GET /orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	orderID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	order, err := h.service.GetByID(r.Context(), identity.FromContext(r.Context()), orderID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, order, "Order retrieved successfully")
}
