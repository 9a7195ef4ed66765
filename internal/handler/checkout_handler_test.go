package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/infinitepay"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCheckoutRouter(providerURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	client := infinitepay.NewClient(config.InfinitePayConfig{
		BaseURL: providerURL,
		Timeout: 2 * time.Second,
	})
	h := NewCheckoutHandler(client)

	r := gin.New()
	r.POST("/checkout", h.CreateCheckout)
	r.GET("/checkout/verify", h.VerifyPayment)
	return r
}

func TestCreateCheckoutPassesProviderBodyThrough(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://checkout.infinitepay.io/abc","slug":"abc"}`))
	}))
	defer provider.Close()

	r := newCheckoutRouter(provider.URL)

	body := `{"handle":"quadra","order_nsu":"APOIO_1","items":[{"quantity":1,"price":500,"description":"Apoio"}]}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://checkout.infinitepay.io/abc","slug":"abc"}`, w.Body.String())
}

func TestCreateCheckoutMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"no items", `{"handle":"quadra","order_nsu":"APOIO_1"}`},
		{"empty items", `{"handle":"quadra","order_nsu":"APOIO_1","items":[]}`},
		{"item without price", `{"handle":"quadra","order_nsu":"APOIO_1","items":[{"quantity":1}]}`},
		{"not json", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerCalled := false
			provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				providerCalled = true
			}))
			defer provider.Close()

			r := newCheckoutRouter(provider.URL)

			req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing required fields")
			assert.False(t, providerCalled, "invalid requests must not reach the provider")
		})
	}
}

func TestCreateCheckoutRelaysProviderFailure(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"invalid handle"}`))
	}))
	defer provider.Close()

	r := newCheckoutRouter(provider.URL)

	body := `{"handle":"nope","order_nsu":"APOIO_1","items":[{"quantity":1,"price":500}]}`
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "provider status is relayed unchanged")
	assert.Contains(t, w.Body.String(), "Failed to generate checkout URL")
	assert.Contains(t, w.Body.String(), "invalid handle")
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"paid":true}`))
	}))
	defer provider.Close()

	r := newCheckoutRouter(provider.URL)

	req := httptest.NewRequest(http.MethodGet, "/checkout/verify?handle=quadra&transaction_nsu=tx-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"paid":true}`, w.Body.String())
}

func TestVerifyPaymentRequiresParams(t *testing.T) {
	r := newCheckoutRouter("http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/checkout/verify?handle=quadra", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
