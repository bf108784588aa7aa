package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trem-do-bem/internal/model"
)

// Dispatcher sends order notifications in the background.
// Outcomes are logged and never reported to the caller.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher whose sends are bounded by timeout.
func NewDispatcher(notifier Notifier, timeout time.Duration, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
		logger:   logger.With().Str("component", "notification-dispatcher").Logger(),
	}
}

// Dispatch renders order and sends it without blocking.
func (d *Dispatcher) Dispatch(order *model.Order) {
	msg := NewOrderMessage(order)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error().Interface("panic", r).Str("order_id", msg.OrderID).Msg("notification panicked")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		result, err := d.notifier.Notify(ctx, msg)
		if err != nil {
			d.logger.Warn().
				Err(err).
				Str("order_id", msg.OrderID).
				Str("status", string(msg.Status)).
				Msg("order notification failed")
			return
		}
		if result.Skipped {
			d.logger.Debug().
				Str("order_id", msg.OrderID).
				Str("reason", string(result.Reason)).
				Msg("order notification skipped")
		}
	}()
}

// Wait blocks until every dispatched notification has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
