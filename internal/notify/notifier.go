package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// SkipReason explains why a notification was deliberately not sent.
type SkipReason string

const (
	FeatureDisabled SkipReason = "feature_disabled"
	Unconfigured    SkipReason = "unconfigured"
	InvalidPhone    SkipReason = "invalid_phone"
)

// Ack is the gateway's acknowledgement body.
type Ack struct {
	OK bool `json:"ok"`
}

// Result is the outcome of a notification that did not fail.
type Result struct {
	Skipped bool       `json:"skipped"`
	Reason  SkipReason `json:"reason,omitempty"`
	Ack     *Ack       `json:"ack,omitempty"`
}

// DeliveryError reports a configured gateway that failed to accept a message.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("delivery failed with status %d: %v", e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("delivery failed: %v", e.Err)
	default:
		return fmt.Sprintf("delivery failed with status %d: %s", e.StatusCode, e.Body)
	}
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Notifier hands a message to the messaging gateway.
type Notifier interface {
	Notify(ctx context.Context, msg Message) (Result, error)
}

// maxBodyBytes caps how much of a gateway response is read.
const maxBodyBytes = 64 << 10

type gatewayRequest struct {
	To      string `json:"to"`
	Text    string `json:"text"`
	OrderID string `json:"orderId,omitempty"`
	Status  string `json:"status,omitempty"`
}

type webhookNotifier struct {
	enabled bool
	url     string
	client  *http.Client
	logger  zerolog.Logger
}

// NewWebhookNotifier creates a Notifier that POSTs JSON to the gateway webhook.
// A nil client uses http.DefaultClient.
func NewWebhookNotifier(enabled bool, url string, client *http.Client, logger zerolog.Logger) Notifier {
	if client == nil {
		client = http.DefaultClient
	}
	return &webhookNotifier{
		enabled: enabled,
		url:     strings.TrimSpace(url),
		client:  client,
		logger:  logger.With().Str("component", "whatsapp-notifier").Logger(),
	}
}

// Notify delivers msg. Skips are returned as results, never as errors.
func (n *webhookNotifier) Notify(ctx context.Context, msg Message) (Result, error) {
	if !n.enabled {
		return n.skip(msg, FeatureDisabled), nil
	}
	if n.url == "" {
		return n.skip(msg, Unconfigured), nil
	}
	to, ok := NormalizePhone(msg.Phone)
	if !ok {
		return n.skip(msg, InvalidPhone), nil
	}

	payload, err := json.Marshal(gatewayRequest{
		To:      to,
		Text:    msg.Text,
		OrderID: msg.OrderID,
		Status:  string(msg.Status),
	})
	if err != nil {
		return Result{}, &DeliveryError{Err: fmt.Errorf("failed to encode message: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, &DeliveryError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return Result{}, &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, &DeliveryError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &DeliveryError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var ack Ack
	if err := json.Unmarshal(body, &ack); err != nil {
		return Result{}, &DeliveryError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			Err:        fmt.Errorf("malformed acknowledgement: %w", err),
		}
	}

	n.logger.Info().
		Str("order_id", msg.OrderID).
		Str("to", to).
		Int("status_code", resp.StatusCode).
		Msg("notification delivered")

	return Result{Ack: &ack}, nil
}

func (n *webhookNotifier) skip(msg Message, reason SkipReason) Result {
	n.logger.Info().
		Str("order_id", msg.OrderID).
		Str("reason", string(reason)).
		Msg("notification skipped")
	return Result{Skipped: true, Reason: reason}
}
