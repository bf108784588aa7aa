package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code. The header is
// already sent when encoding fails, so the error is only logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code and code.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message}, logger)
}

// writeServiceError maps a service error onto an HTTP response.
// Domain errors keep their code; anything else is a 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	de, ok := model.AsDomainError(err)
	if !ok {
		logger.Error().Err(err).Msg("unexpected service error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case model.KindValidation:
		status = http.StatusBadRequest
	case model.KindNotFound:
		status = http.StatusNotFound
	case model.KindAuth:
		status = http.StatusUnauthorized
	case model.KindForbidden:
		status = http.StatusForbidden
	}
	writeError(w, status, de.Code, de.Message, logger)
}

// decodeJSON reads a size-limited JSON body into dst.
// On failure it writes a 400 invalid_json response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "request body must be valid JSON"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			message = "request body too large"
		}
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, message, logger)
		return false
	}
	return true
}
