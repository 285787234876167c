package handler

import (
	"net/http"

	"shopkart/internal/identity"
	"shopkart/internal/service"
	"shopkart/internal/validate"

	"github.com/rs/zerolog"
)

// CouponHandler handles coupon-related HTTP requests.
type CouponHandler struct {
	service service.CouponService
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// codeRequest is the payload for coupon operations.
type codeRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *CouponHandler) decodeCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req codeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return "", false
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return "", false
	}
	return req.Code, true
}

// Validate handles POST /coupon/validate/ requests.
func (h *CouponHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	code, ok := h.decodeCode(w, r)
	if !ok {
		return
	}

	result, err := h.service.Validate(r.Context(), identity.FromContext(r.Context()), code)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, result, "Coupon validated successfully")
}

// Apply handles POST /coupon/apply/ requests.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	code, ok := h.decodeCode(w, r)
	if !ok {
		return
	}

	result, err := h.service.Apply(r.Context(), identity.FromContext(r.Context()), code)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, result, "Coupon applied successfully")
}

// Remove handles POST /coupon/remove/ requests.
func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	code, ok := h.decodeCode(w, r)
	if !ok {
		return
	}

	if err := h.service.Remove(r.Context(), identity.FromContext(r.Context()), code); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Coupon removed successfully")
}

// History handles GET /coupon/history/ requests.
func (h *CouponHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	history, err := h.service.History(r.Context(), identity.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, history, "Coupon usage history retrieved successfully")
}

// List handles GET /coupon/list/ requests.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	coupons, err := h.service.ListActive(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, coupons, "Active coupons retrieved successfully")
}
