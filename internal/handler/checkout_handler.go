package handler

import (
	"errors"
	"net/http"

	"github.com/apoiacoletivo/acs/internal/infinitepay"
	"github.com/apoiacoletivo/acs/internal/logger"
	"github.com/gin-gonic/gin"
)

// CheckoutHandler is the stateless checkout proxy: it validates the request
// shape and forwards it to the payment provider, relaying provider failures
// unchanged. It never retries; each call may open a new checkout session.
type CheckoutHandler struct {
	client *infinitepay.Client
}

// NewCheckoutHandler creates the checkout proxy handler.
func NewCheckoutHandler(client *infinitepay.Client) *CheckoutHandler {
	return &CheckoutHandler{client: client}
}

// CreateCheckout forwards a checkout request to the provider.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req infinitepay.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: handle, order_nsu, items"})
		return
	}

	link, err := h.client.CreateCheckoutLink(c.Request.Context(), &req)
	if err != nil {
		var provErr *infinitepay.ProviderError
		if errors.As(err, &provErr) {
			logger.Error("Provider rejected checkout for handle %s: %v", req.Handle, err)
			c.JSON(provErr.StatusCode, gin.H{
				"error":   "Failed to generate checkout URL",
				"details": provErr.Body,
			})
			return
		}
		logger.Error("Checkout creation failed for handle %s: %v", req.Handle, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	// The provider's body goes back unchanged.
	c.Data(http.StatusOK, "application/json", link.Raw)
}

// VerifyPayment exposes the provider's payment-status check. A verification
// that could not run reads the same as an unpaid one.
func (h *CheckoutHandler) VerifyPayment(c *gin.Context) {
	handle := c.Query("handle")
	transactionNsu := c.Query("transaction_nsu")
	orderNsu := c.Query("external_order_nsu")
	slug := c.Query("slug")

	if handle == "" || transactionNsu == "" {
		ErrorResponse(c, http.StatusBadRequest, "Os parâmetros handle e transaction_nsu são obrigatórios")
		return
	}

	result := h.client.VerifyPayment(c.Request.Context(), handle, transactionNsu, orderNsu, slug)
	c.JSON(http.StatusOK, result)
}
