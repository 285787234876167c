package handler

import (
	"net/http"

	"shopkart/internal/identity"
	"shopkart/internal/service"
	"shopkart/internal/validate"

	"github.com/rs/zerolog"
)

// ReviewHandler handles product review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

type createReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Handle dispatches /products/{id}/reviews by method.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
	}
}

func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListByProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, reviews, "Reviews retrieved successfully")
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	review, err := h.service.Create(r.Context(), identity.FromContext(r.Context()),
		r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, review, "Review created successfully")
}

func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), identity.FromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Review deleted successfully")
}
