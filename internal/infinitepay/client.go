package infinitepay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/apoiacoletivo/acs/internal/config"
	"github.com/apoiacoletivo/acs/internal/logger"
)

const (
	checkoutLinksPath = "/invoices/public/checkout/links"
	paymentCheckPath  = "/invoices/public/checkout/payment_check"
)

// Client talks to the InfinitePay public API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// CheckoutItem is one line item of a checkout request.
type CheckoutItem struct {
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Price       int64  `json:"price" binding:"required,min=1"` // centavos
	Description string `json:"description"`
}

// CheckoutCustomer is the optional customer contact on a checkout request.
type CheckoutCustomer struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// CheckoutRequest is the body forwarded to the provider's checkout-link
// endpoint. OrderNsu is the caller-generated correlation reference.
type CheckoutRequest struct {
	Handle   string            `json:"handle" binding:"required"`
	OrderNsu string            `json:"order_nsu" binding:"required"`
	Items    []CheckoutItem    `json:"items" binding:"required,min=1,dive"`
	Customer *CheckoutCustomer `json:"customer,omitempty"`
}

// CheckoutLink is the provider's checkout-link response. Fields beyond the
// URL are passed through untouched in Raw.
type CheckoutLink struct {
	URL string          `json:"url"`
	Raw json.RawMessage `json:"-"`
}

// VerifyResult reports whether a payment was confirmed by the provider.
type VerifyResult struct {
	Success bool `json:"success"`
	Paid    bool `json:"paid"`
}

// ProviderError carries a non-success provider response so callers can pass
// the status and body through unchanged.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("infinitepay: provider returned %d: %s", e.StatusCode, e.Body)
}

func NewClient(cfg config.InfinitePayConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateCheckoutLink forwards the checkout request to the provider and
// returns its response body. No retries; a non-2xx response comes back as a
// *ProviderError so the proxy endpoint can relay it verbatim.
func (c *Client) CreateCheckoutLink(ctx context.Context, req *CheckoutRequest) (*CheckoutLink, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("infinitepay: encode checkout request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkoutLinksPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("infinitepay: build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("infinitepay: checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("infinitepay: read checkout response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var link CheckoutLink
	if err := json.Unmarshal(respBody, &link); err != nil {
		return nil, fmt.Errorf("infinitepay: decode checkout response: %w", err)
	}
	link.Raw = respBody

	return &link, nil
}

// VerifyPayment asks the provider whether a payment went through. Transport
// failures, non-2xx responses and malformed bodies all come back as
// not-verified; the reconciliation flow treats "could not verify" the same
// as "verified unpaid".
func (c *Client) VerifyPayment(ctx context.Context, handle, transactionNsu, orderNsu, slug string) VerifyResult {
	query := url.Values{}
	query.Set("transaction_nsu", transactionNsu)
	query.Set("external_order_nsu", orderNsu)
	query.Set("slug", slug)

	checkURL := fmt.Sprintf("%s%s/%s?%s", c.baseURL, paymentCheckPath, url.PathEscape(handle), query.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, checkURL, nil)
	if err != nil {
		logger.Error("Payment verification request build failed: %v", err)
		return VerifyResult{}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("Payment verification request failed: %v", err)
		return VerifyResult{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Payment verification returned status %d for transaction %s", resp.StatusCode, transactionNsu)
		return VerifyResult{}
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		logger.Error("Payment verification response decode failed: %v", err)
		return VerifyResult{}
	}

	return result
}
