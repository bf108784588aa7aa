package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
	"trem-do-bem/internal/notify"
)

// notificationService implements NotificationService.
type notificationService struct {
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifier notify.Notifier, logger zerolog.Logger) NotificationService {
	return &notificationService{
		notifier: notifier,
		logger:   logger.With().Str("service", "notification").Logger(),
	}
}

// Send delivers an ad-hoc message. Unlike status-change notifications,
// delivery errors are returned to the caller.
func (s *notificationService) Send(ctx context.Context, req *model.NotificationRequest) (notify.Result, error) {
	if req == nil {
		return notify.Result{}, model.ErrInvalidNotification
	}

	msg := notify.Message{
		Phone: strings.TrimSpace(req.Phone),
		Text:  strings.TrimSpace(req.Text),
	}
	if err := validate.Struct(&model.NotificationRequest{Phone: msg.Phone, Text: msg.Text}); err != nil {
		return notify.Result{}, model.ErrInvalidNotification
	}

	result, err := s.notifier.Notify(ctx, msg)
	if err != nil {
		s.logger.Warn().Err(err).Msg("ad-hoc notification failed")
		return notify.Result{}, err
	}
	return result, nil
}
