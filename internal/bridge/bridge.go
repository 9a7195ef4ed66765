package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/logger"
)

// ErrUnavailable reports that the in-app payment bridge never appeared
// within the acquisition bound. Callers treat this as the signal to fall
// back to the hosted checkout, not as a failure.
var ErrUnavailable = errors.New("bridge: payment bridge not available")

// Bridge is the in-app payment integration injected by the host payment
// application. It is acquired through the Adapter, never read from ambient
// state by the rest of the service.
type Bridge interface {
	GetUserData(ctx context.Context) (*Response[UserData], error)
	SendCheckoutPayment(ctx context.Context, checkoutURL string) (*Response[PaymentData], error)
}

// Response is the provider's success/error envelope.
type Response[T any] struct {
	Status  string `json:"status"` // "success" or "error"
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// UserData identifies the current user inside the host payment app.
type UserData struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Role   string `json:"role"`
}

// PaymentData is the result of a completed in-app payment.
type PaymentData struct {
	TransactionNsu string `json:"transactionNsu"`
	Amount         int64  `json:"amount"`
	ReceiptURL     string `json:"receiptUrl,omitempty"`
}

// Source reports the currently injected bridge, or nil while the host app
// has not injected one yet.
type Source func() Bridge

// Adapter wraps the externally-injected bridge behind a bounded acquisition
// step and normalizes its envelopes into typed results.
type Adapter struct {
	source       Source
	pollInterval time.Duration
	maxAttempts  int
	sendTimeout  time.Duration
}

func NewAdapter(source Source, cfg config.BridgeConfig) *Adapter {
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 100 * time.Millisecond
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 20
	}
	sendTimeout := cfg.SendTimeout
	if sendTimeout <= 0 {
		sendTimeout = 2 * time.Minute
	}

	return &Adapter{
		source:       source,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		sendTimeout:  sendTimeout,
	}
}

// Available probes for the bridge without waiting.
func (a *Adapter) Available() bool {
	return a.source != nil && a.source() != nil
}

// Acquire polls for the injected bridge at a fixed interval up to the
// configured attempt bound.
func (a *Adapter) Acquire(ctx context.Context) (Bridge, error) {
	if a.source == nil {
		return nil, ErrUnavailable
	}

	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		if b := a.source(); b != nil {
			return b, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollInterval):
		}
	}

	return nil, ErrUnavailable
}

// GetUser fetches the current user through the bridge.
func (a *Adapter) GetUser(ctx context.Context) (*UserData, error) {
	b, err := a.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := b.GetUserData(ctx)
	if err != nil {
		return nil, fmt.Errorf("bridge: user fetch failed: %w", err)
	}
	if resp.Status != "success" || resp.Data == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("bridge: user fetch failed: %s", resp.Message)
		}
		return nil, errors.New("bridge: user fetch failed")
	}

	return resp.Data, nil
}

// SendCheckout completes a checkout payment in-app. The call is bounded by
// the configured send timeout; the bridge itself applies no bound. A single
// failed attempt is surfaced to the caller, which owns the fallback.
func (a *Adapter) SendCheckout(ctx context.Context, checkoutURL string) (*PaymentData, error) {
	b, err := a.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, a.sendTimeout)
	defer cancel()

	resp, err := b.SendCheckoutPayment(sendCtx, checkoutURL)
	if err != nil {
		return nil, fmt.Errorf("bridge: payment failed: %w", err)
	}
	if resp.Status != "success" || resp.Data == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("bridge: payment failed: %s", resp.Message)
		}
		return nil, errors.New("bridge: payment failed")
	}

	logger.Debug("In-app payment completed, transaction %s", resp.Data.TransactionNsu)

	return resp.Data, nil
}
