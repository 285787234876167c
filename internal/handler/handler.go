package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, Response{Success: true, Data: data, Message: message})
}

// writeError writes a failure envelope with the given status and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, Response{Success: false, Message: message})
}

// statusFor maps a domain error kind to an HTTP status code.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindInvalidArgument, model.KindInvalidState:
		return http.StatusBadRequest
	case model.KindUnauthorised:
		return http.StatusUnauthorized
	case model.KindTransactionFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps a service error to the response envelope.
// Domain errors keep their message; everything else becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusFor(domainErr.Kind), domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected service error")
	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}

// decodeJSON decodes a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
