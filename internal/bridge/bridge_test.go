package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBridge struct {
	user        *Response[UserData]
	userErr     error
	pay         *Response[PaymentData]
	payErr      error
	gotURL      string
	hadDeadline bool
}

func (s *stubBridge) GetUserData(ctx context.Context) (*Response[UserData], error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubBridge) SendCheckoutPayment(ctx context.Context, checkoutURL string) (*Response[PaymentData], error) {
	s.gotURL = checkoutURL
	_, s.hadDeadline = ctx.Deadline()
	if s.payErr != nil {
		return nil, s.payErr
	}
	return s.pay, nil
}

func fastConfig() config.BridgeConfig {
	return config.BridgeConfig{
		PollInterval: time.Millisecond,
		MaxAttempts:  3,
		SendTimeout:  time.Second,
	}
}

func TestAdapterAvailable(t *testing.T) {
	registry := NewRegistry()
	adapter := NewAdapter(registry.Source(), fastConfig())

	assert.False(t, adapter.Available())

	registry.Set(&stubBridge{})
	assert.True(t, adapter.Available())

	registry.Set(nil)
	assert.False(t, adapter.Available())
}

func TestAdapterAvailableWithoutSource(t *testing.T) {
	adapter := NewAdapter(nil, fastConfig())
	assert.False(t, adapter.Available())
}

func TestAcquireReturnsInjectedBridge(t *testing.T) {
	registry := NewRegistry()
	b := &stubBridge{}
	registry.Set(b)

	adapter := NewAdapter(registry.Source(), fastConfig())

	got, err := adapter.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, Bridge(b), got)
}

func TestAcquireWaitsForLateInjection(t *testing.T) {
	registry := NewRegistry()
	adapter := NewAdapter(registry.Source(), config.BridgeConfig{
		PollInterval: time.Millisecond,
		MaxAttempts:  50,
	})

	b := &stubBridge{}
	go func() {
		time.Sleep(5 * time.Millisecond)
		registry.Set(b)
	}()

	got, err := adapter.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, Bridge(b), got)
}

func TestAcquireGivesUpAfterBound(t *testing.T) {
	registry := NewRegistry()
	adapter := NewAdapter(registry.Source(), fastConfig())

	start := time.Now()
	_, err := adapter.Acquire(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), time.Second, "acquisition must be bounded")
}

func TestAcquireHonorsContext(t *testing.T) {
	registry := NewRegistry()
	adapter := NewAdapter(registry.Source(), config.BridgeConfig{
		PollInterval: 10 * time.Millisecond,
		MaxAttempts:  1000,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendCheckoutSuccess(t *testing.T) {
	registry := NewRegistry()
	b := &stubBridge{
		pay: &Response[PaymentData]{
			Status: "success",
			Data:   &PaymentData{TransactionNsu: "tx-1", Amount: 500, ReceiptURL: "https://receipt.example/1"},
		},
	}
	registry.Set(b)

	adapter := NewAdapter(registry.Source(), fastConfig())

	pay, err := adapter.SendCheckout(context.Background(), "https://checkout.example/abc")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", pay.TransactionNsu)
	assert.Equal(t, "https://checkout.example/abc", b.gotURL)
	assert.True(t, b.hadDeadline, "payment call must carry the send timeout")
}

func TestSendCheckoutErrorEnvelope(t *testing.T) {
	registry := NewRegistry()
	registry.Set(&stubBridge{
		pay: &Response[PaymentData]{Status: "error", Message: "cartão recusado"},
	})

	adapter := NewAdapter(registry.Source(), fastConfig())

	_, err := adapter.SendCheckout(context.Background(), "https://checkout.example/abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cartão recusado")
}

func TestSendCheckoutSuccessWithoutData(t *testing.T) {
	registry := NewRegistry()
	registry.Set(&stubBridge{
		pay: &Response[PaymentData]{Status: "success"},
	})

	adapter := NewAdapter(registry.Source(), fastConfig())

	_, err := adapter.SendCheckout(context.Background(), "https://checkout.example/abc")
	assert.Error(t, err, "a success envelope without data is a failure")
}

func TestSendCheckoutTransportError(t *testing.T) {
	registry := NewRegistry()
	registry.Set(&stubBridge{payErr: errors.New("socket closed")})

	adapter := NewAdapter(registry.Source(), fastConfig())

	_, err := adapter.SendCheckout(context.Background(), "https://checkout.example/abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "socket closed")
}

func TestGetUser(t *testing.T) {
	registry := NewRegistry()
	registry.Set(&stubBridge{
		user: &Response[UserData]{
			Status: "success",
			Data:   &UserData{Id: "u-1", Name: "Maria", Handle: "maria", Role: "owner"},
		},
	})

	adapter := NewAdapter(registry.Source(), fastConfig())

	user, err := adapter.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Handle)
}

func TestGetUserErrorEnvelope(t *testing.T) {
	registry := NewRegistry()
	registry.Set(&stubBridge{
		user: &Response[UserData]{Status: "error", Message: "sessão expirada"},
	})

	adapter := NewAdapter(registry.Source(), fastConfig())

	_, err := adapter.GetUser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sessão expirada")
}
