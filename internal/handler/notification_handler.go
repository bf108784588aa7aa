package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/notify"
	"trem-do-bem/internal/service"
)

// NotificationResponse wraps the outcome of an ad-hoc notification.
type NotificationResponse struct {
	Result notify.Result `json:"result"`
}

// NotificationHandler handles ad-hoc admin notifications.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// Send handles POST /notifications requests.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.NotificationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		var de *notify.DeliveryError
		if errors.As(err, &de) {
			writeError(w, http.StatusBadGateway, model.ErrCodeDeliveryFailed, de.Error(), h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, NotificationResponse{Result: result}, h.logger)
}
