package payment

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/apoiacoletivo/acs/internal/bridge"
	"github.com/apoiacoletivo/acs/internal/infinitepay"
	"github.com/apoiacoletivo/acs/internal/logger"
	"github.com/apoiacoletivo/acs/internal/model"
)

// MinValorCentavos is the smallest accepted contribution, R$ 1,00.
const MinValorCentavos = 100

// Same shape check the contribution form applies.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// State is the terminal state of one contribution attempt.
type State string

const (
	// StateRejected: a local validation or checkout-setup failure, nothing
	// was charged or recorded.
	StateRejected State = "rejected"
	// StateSucceeded: the contribution is verified and recorded.
	StateSucceeded State = "succeeded"
	// StatePendingExternal: the hosted checkout URL was handed to the
	// supporter; completion arrives later through the redirect return.
	StatePendingExternal State = "pending_external"
	// StateVerificationFailed: the provider did not confirm the payment;
	// nothing was recorded.
	StateVerificationFailed State = "verification_failed"
	// StateSkipped: a redirect return without payment parameters, treated
	// as a direct in-app arrival.
	StateSkipped State = "skipped"
)

// Outcome is the result of one contribution attempt or reconciliation.
type Outcome struct {
	State          State  `json:"state"`
	Message        string `json:"message"`
	CheckoutURL    string `json:"checkout_url,omitempty"`
	TransactionNsu string `json:"transaction_nsu,omitempty"`
	ReceiptURL     string `json:"receipt_url,omitempty"`
}

// ContributionRequest is one supporter's contribution attempt.
type ContributionRequest struct {
	ApoioId string
	Nome    string
	Email   string
	Valor   int64 // centavos
}

// ReturnParams are the query parameters the provider appends when the
// hosted checkout redirects back.
type ReturnParams struct {
	ReceiptURL    string
	TransactionId string
	CaptureMethod string
	OrderNsu      string
	Slug          string
	ApoioId       string
	Nome          string
	Email         string
	Valor         string
}

// complete reports whether every parameter required for verification is
// present. A partial set means the supporter arrived from an in-app
// payment, not from the hosted checkout.
func (p ReturnParams) complete() bool {
	return p.ReceiptURL != "" && p.TransactionId != "" && p.CaptureMethod != "" &&
		p.OrderNsu != "" && p.Slug != "" && p.ApoioId != "" &&
		p.Nome != "" && p.Email != "" && p.Valor != ""
}

// CheckoutCreator creates a hosted checkout session.
type CheckoutCreator interface {
	CreateCheckoutLink(ctx context.Context, req *infinitepay.CheckoutRequest) (*infinitepay.CheckoutLink, error)
}

// Verifier asks the provider whether a payment went through.
type Verifier interface {
	VerifyPayment(ctx context.Context, handle, transactionNsu, orderNsu, slug string) infinitepay.VerifyResult
}

// BridgeAdapter is the acquired in-app payment capability.
type BridgeAdapter interface {
	Available() bool
	SendCheckout(ctx context.Context, checkoutURL string) (*bridge.PaymentData, error)
}

// Store is the campaign/contribution persistence the flow writes through.
type Store interface {
	GetApoio(id string) (*model.ApoioModel, error)
	RegisterApoiador(apoiador *model.ApoiadorModel) (bool, error)
}

// Flow orchestrates one contribution end to end: checkout creation, the
// in-app payment attempt with hosted-checkout fallback, and the redirect
// return reconciliation. Verification always precedes persistence.
type Flow struct {
	checkout CheckoutCreator
	verifier Verifier
	bridge   BridgeAdapter
	store    Store
}

func NewFlow(checkout CheckoutCreator, verifier Verifier, bridgeAdapter BridgeAdapter, store Store) *Flow {
	return &Flow{
		checkout: checkout,
		verifier: verifier,
		bridge:   bridgeAdapter,
		store:    store,
	}
}

// Contribute runs a contribution attempt up to its terminal state. Local
// rejections never reach the network; checkout or in-app failures degrade
// to the hosted checkout instead of erroring out.
func (f *Flow) Contribute(ctx context.Context, req ContributionRequest) Outcome {
	if utf8.RuneCountInString(req.Nome) < 3 {
		return Outcome{State: StateRejected, Message: "O nome deve ter pelo menos 3 caracteres."}
	}
	if !emailRegexp.MatchString(req.Email) {
		return Outcome{State: StateRejected, Message: "Por favor, insira um endereço de email válido."}
	}

	apoio, err := f.store.GetApoio(req.ApoioId)
	if err != nil {
		return Outcome{State: StateRejected, Message: "Apoio não encontrado."}
	}

	if apoio.ValorAtual >= apoio.MetaValor || apoio.Status != model.ApoioStatusAtivo {
		return Outcome{State: StateRejected, Message: "Esta campanha foi finalizada e não pode receber mais apoios."}
	}

	if req.Valor < MinValorCentavos {
		return Outcome{State: StateRejected, Message: "O valor mínimo para apoio é R$ 1,00."}
	}
	restante := apoio.MetaValor - apoio.ValorAtual
	if req.Valor > restante {
		return Outcome{
			State:   StateRejected,
			Message: fmt.Sprintf("O valor máximo que pode ser apoiado é %s.", formatReais(restante)),
		}
	}

	orderNsu := fmt.Sprintf("APOIO_%d", time.Now().UnixMilli())
	link, err := f.checkout.CreateCheckoutLink(ctx, &infinitepay.CheckoutRequest{
		Handle:   apoio.HandleInfinitepay,
		OrderNsu: orderNsu,
		Items: []infinitepay.CheckoutItem{{
			Quantity:    1,
			Price:       req.Valor,
			Description: fmt.Sprintf("Apoio para: %s", apoio.Titulo),
		}},
		Customer: &infinitepay.CheckoutCustomer{
			Name:  req.Nome,
			Email: req.Email,
		},
	})
	if err != nil {
		logger.Error("Checkout creation failed for apoio %s: %v", apoio.Id, err)
		return Outcome{State: StateRejected, Message: "Não foi possível gerar o link de pagamento. Tente novamente."}
	}

	if f.bridge != nil && f.bridge.Available() {
		pay, err := f.bridge.SendCheckout(ctx, link.URL)
		if err != nil {
			// Expected alternate path: fall through to the hosted checkout.
			logger.Warn("In-app payment failed for apoio %s, falling back to checkout URL: %v", apoio.Id, err)
		} else {
			if _, err := f.store.RegisterApoiador(&model.ApoiadorModel{
				ApoioId:        apoio.Id,
				Nome:           req.Nome,
				Email:          req.Email,
				Valor:          req.Valor,
				TransactionNsu: pay.TransactionNsu,
			}); err != nil {
				logger.Error("Failed to record in-app contribution %s: %v", pay.TransactionNsu, err)
			}
			return Outcome{
				State:          StateSucceeded,
				Message:        "Apoio realizado! Obrigado por apoiar esta causa.",
				TransactionNsu: pay.TransactionNsu,
				ReceiptURL:     pay.ReceiptURL,
			}
		}
	}

	return Outcome{
		State:       StatePendingExternal,
		Message:     "Você será redirecionado para completar o pagamento.",
		CheckoutURL: link.URL,
	}
}

// ReconcileReturn handles the redirect back from the hosted checkout. An
// incomplete parameter set is a direct in-app arrival and a no-op. A
// complete set is verified against the provider before anything is
// recorded; the unique transaction reference makes re-runs idempotent.
func (f *Flow) ReconcileReturn(ctx context.Context, params ReturnParams) Outcome {
	if !params.complete() {
		return Outcome{State: StateSkipped}
	}

	valor, err := strconv.ParseInt(params.Valor, 10, 64)
	if err != nil || valor <= 0 {
		logger.Warn("Redirect return with malformed valor %q, skipping", params.Valor)
		return Outcome{State: StateSkipped}
	}

	apoio, err := f.store.GetApoio(params.ApoioId)
	if err != nil {
		logger.Error("Redirect return for unknown apoio %s: %v", params.ApoioId, err)
		return Outcome{State: StateVerificationFailed, Message: "Não foi possível verificar o pagamento."}
	}

	result := f.verifier.VerifyPayment(ctx, apoio.HandleInfinitepay, params.TransactionId, params.OrderNsu, params.Slug)
	if !result.Success || !result.Paid {
		logger.Warn("Payment %s not confirmed (success=%v paid=%v)", params.TransactionId, result.Success, result.Paid)
		return Outcome{State: StateVerificationFailed, Message: "O pagamento não foi confirmado. Tente novamente."}
	}

	inserted, err := f.store.RegisterApoiador(&model.ApoiadorModel{
		ApoioId:        apoio.Id,
		Nome:           params.Nome,
		Email:          params.Email,
		Valor:          valor,
		TransactionNsu: params.TransactionId,
	})
	if err != nil {
		logger.Error("Failed to record contribution %s: %v", params.TransactionId, err)
		return Outcome{State: StateRejected, Message: "Não foi possível registrar seu apoio. Tente novamente."}
	}
	if !inserted {
		logger.Info("Contribution %s already recorded, skipping insert", params.TransactionId)
	}

	return Outcome{
		State:          StateSucceeded,
		Message:        "Apoio realizado! Obrigado por apoiar esta causa.",
		TransactionNsu: params.TransactionId,
		ReceiptURL:     params.ReceiptURL,
	}
}

// formatReais renders centavos as a pt-BR currency string.
func formatReais(centavos int64) string {
	return fmt.Sprintf("R$ %d,%02d", centavos/100, centavos%100)
}
