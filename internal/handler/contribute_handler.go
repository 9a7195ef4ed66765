package handler

import (
	"net/http"

	"github.com/apoiacoletivo/acs/internal/payment"
	"github.com/gin-gonic/gin"
)

// ContributeHandler drives the contribution reconciliation flow.
type ContributeHandler struct {
	flow *payment.Flow
}

// NewContributeHandler creates the contribution flow handler.
func NewContributeHandler(flow *payment.Flow) *ContributeHandler {
	return &ContributeHandler{flow: flow}
}

// Contribute runs a contribution attempt for a campaign. The response
// carries the terminal state; on the hosted-checkout fallback the caller
// opens the returned URL in a new browsing context.
func (h *ContributeHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Preencha todos os campos para continuar.")
		return
	}

	outcome := h.flow.Contribute(c.Request.Context(), payment.ContributionRequest{
		ApoioId: c.Param("id"),
		Nome:    req.Nome,
		Email:   req.Email,
		Valor:   req.Valor,
	})

	c.JSON(statusForOutcome(outcome.State), Response{
		Success: outcome.State == payment.StateSucceeded || outcome.State == payment.StatePendingExternal,
		Message: outcome.Message,
		Data:    outcome,
	})
}

// PaymentReturn is the redirect-return entry point: the hosted checkout
// sends the supporter back here with the payment confirmation parameters.
// Arrivals without the full parameter set are direct in-app arrivals and a
// no-op.
func (h *ContributeHandler) PaymentReturn(c *gin.Context) {
	outcome := h.flow.ReconcileReturn(c.Request.Context(), payment.ReturnParams{
		ReceiptURL:    c.Query("receipt_url"),
		TransactionId: c.Query("transaction_id"),
		CaptureMethod: c.Query("capture_method"),
		OrderNsu:      c.Query("order_nsu"),
		Slug:          c.Query("slug"),
		ApoioId:       c.Query("apoio_id"),
		Nome:          c.Query("nome"),
		Email:         c.Query("email"),
		Valor:         c.Query("valor"),
	})

	c.JSON(statusForOutcome(outcome.State), Response{
		Success: outcome.State == payment.StateSucceeded || outcome.State == payment.StateSkipped,
		Message: outcome.Message,
		Data:    outcome,
	})
}

// statusForOutcome maps a flow terminal state onto an HTTP status.
func statusForOutcome(state payment.State) int {
	switch state {
	case payment.StateRejected:
		return http.StatusBadRequest
	case payment.StateVerificationFailed:
		return http.StatusPaymentRequired
	default:
		return http.StatusOK
	}
}
