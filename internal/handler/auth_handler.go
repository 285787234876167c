package handler

import (
	"net/http"

	"shopkart/internal/service"
	"shopkart/internal/validate"

	"github.com/rs/zerolog"
)

// AuthHandler handles account and token HTTP requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	resp, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, resp, "Account created successfully")
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if err := validate.Check(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, resp, "Logged in successfully")
}

// Guest handles POST /auth/guest requests.
func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	resp, err := h.service.Guest(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, resp, "Guest session created successfully")
}
