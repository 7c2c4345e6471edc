package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// LineItem is a checkout line as handed to the gateway. UnitAmount is
// in minor units (cents).
type LineItem struct {
	Name       string
	UnitAmount int64
	Qty        int
}

// SessionRequest describes a hosted checkout page to create. OrderID
// travels in the session metadata and comes back on the webhook event.
type SessionRequest struct {
	Items      []LineItem
	Currency   string
	SuccessURL string
	CancelURL  string
	OrderID    string
}

// Session is the created checkout session. The customer is redirected
// to URL to pay.
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Gateway creates hosted checkout sessions.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (Session, error)
}

// MinorUnits converts a decimal price to integer cents, rounding
// halves up. 19.995 becomes 2000, 0.004 becomes 0.
func MinorUnits(price float64) int64 {
	return int64(math.Floor(price*100 + 0.5))
}

const stripeAPIBase = "https://api.stripe.com"

// StripeGateway talks to the Stripe Checkout Sessions API directly.
// Stripe takes form-encoded requests and answers JSON.
type StripeGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		baseURL:   stripeAPIBase,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeGatewayWithBaseURL points the gateway at a non-default API
// host, used by tests.
func NewStripeGatewayWithBaseURL(secretKey, baseURL string) *StripeGateway {
	g := NewStripeGateway(secretKey)
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	if req.OrderID != "" {
		form.Set("metadata[orderId]", req.OrderID)
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "eur"
	}
	for i, it := range req.Items {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", currency)
		form.Set(prefix+"[price_data][product_data][name]", it.Name)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(it.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.Itoa(it.Qty))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return Session{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Session{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Session{}, stripeError(resp.StatusCode, body)
	}

	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func stripeError(status int, body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return fmt.Errorf("stripe: %s (status %d)", payload.Error.Message, status)
	}
	return errors.New("stripe: request failed with status " + strconv.Itoa(status))
}
