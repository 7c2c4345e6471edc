package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/groshop/grocery-shop-backend/internal/order"
)

// fakeGateway records the last session request instead of calling out.
type fakeGateway struct {
	lastReq SessionRequest
	session Session
	err     error
}

func (g *fakeGateway) CreateSession(ctx context.Context, req SessionRequest) (Session, error) {
	g.lastReq = req
	if g.err != nil {
		return Session{}, g.err
	}
	return g.session, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func makeApp(gateway Gateway, orders Orders) *fiber.App {
	app := fiber.New()
	h := NewHandler(gateway, orders, testSecret, "http://localhost:5173", quietLogger())
	h.RegisterRoutes(app)
	return app
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{2.50, 250},
		{1.80, 180},
		{19.995, 2000},
		{0.004, 0},
		{0.005, 1},
		{0, 0},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.price); got != tc.want {
			t.Fatalf("MinorUnits(%v) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestCreateCheckoutSession_BuildsGatewayRequest(t *testing.T) {
	gateway := &fakeGateway{session: Session{ID: "cs_1", URL: "https://checkout.example/cs_1"}}
	app := makeApp(gateway, nil)

	payload := `{"orderId":"ord_1","items":[{"productId":1,"name":"Bread","price":2.50,"qty":2},{"productId":2,"name":"Milk","price":1.80,"qty":1}]}`
	req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["url"] != "https://checkout.example/cs_1" {
		t.Fatalf("expected session url in response, got %v", body)
	}

	got := gateway.lastReq
	if got.OrderID != "ord_1" {
		t.Fatalf("expected orderId metadata ord_1, got %q", got.OrderID)
	}
	if got.Currency != "eur" {
		t.Fatalf("expected eur currency, got %q", got.Currency)
	}
	if got.SuccessURL != "http://localhost:5173/cart?paid=1" || got.CancelURL != "http://localhost:5173/cart?canceled=1" {
		t.Fatalf("unexpected redirect urls: %q / %q", got.SuccessURL, got.CancelURL)
	}
	want := []LineItem{
		{Name: "Bread", UnitAmount: 250, Qty: 2},
		{Name: "Milk", UnitAmount: 180, Qty: 1},
	}
	if len(got.Items) != len(want) {
		t.Fatalf("expected %d line items, got %d", len(want), len(got.Items))
	}
	for i, w := range want {
		if got.Items[i] != w {
			t.Fatalf("line %d = %+v, want %+v", i, got.Items[i], w)
		}
	}
}

func TestCreateCheckoutSession_RejectsBadInput(t *testing.T) {
	gateway := &fakeGateway{}
	app := makeApp(gateway, nil)

	for _, payload := range []string{
		`{"items":[]}`,
		`{"items":[{"name":"Bread","price":2.5,"qty":0}]}`,
		`{"items":[{"name":"","price":2.5,"qty":1}]}`,
		`{"items":[{"name":"Bread","price":-1,"qty":1}]}`,
	} {
		req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, res.StatusCode)
		}
	}
}

func TestCreateCheckoutSession_GatewayFailure(t *testing.T) {
	gateway := &fakeGateway{err: context.DeadlineExceeded}
	app := makeApp(gateway, nil)

	payload := `{"items":[{"name":"Bread","price":2.5,"qty":1}]}`
	req := httptest.NewRequest("POST", "/create-checkout-session", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 on gateway failure, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !bytes.Contains(b, []byte("failed to create session")) {
		t.Fatalf("expected generic error body, got %s", b)
	}
}

func postWebhook(t *testing.T, app *fiber.App, body []byte, header string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set(SignatureHeader, header)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("webhook request failed: %v", err)
	}
	return res.StatusCode
}

func completedEventBody(orderID, sessionID string) []byte {
	return []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"` + sessionID + `","metadata":{"orderId":"` + orderID + `"}}}}`)
}

func TestWebhook_MarksOrderPaidAndStaysIdempotent(t *testing.T) {
	repo := order.NewInMemoryRepository([]order.Order{{
		ID:            "ord_1",
		UserID:        7,
		Status:        order.StatusPendingPayment,
		PaymentMethod: order.PaymentStripe,
		Total:         6.8,
	}})
	orders := order.NewService(repo)
	app := makeApp(&fakeGateway{}, orders)

	body := completedEventBody("ord_1", "cs_1")
	header := SignPayload(time.Now(), body, testSecret)

	if code := postWebhook(t, app, body, header); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	ord, err := repo.GetByID("ord_1")
	if err != nil {
		t.Fatalf("order lookup failed: %v", err)
	}
	if ord.Status != order.StatusPaid {
		t.Fatalf("expected status paid, got %s", ord.Status)
	}
	if ord.StripeSessionID != "cs_1" || ord.PaidAt == "" {
		t.Fatalf("expected payment fields recorded, got %+v", ord)
	}

	// redelivery converges to the same state
	header2 := SignPayload(time.Now(), body, testSecret)
	if code := postWebhook(t, app, body, header2); code != fiber.StatusOK {
		t.Fatalf("expected 200 on redelivery, got %d", code)
	}
	ord2, _ := repo.GetByID("ord_1")
	if ord2.Status != order.StatusPaid || ord2.StripeSessionID != "cs_1" {
		t.Fatalf("redelivery changed the order: %+v", ord2)
	}
}

func TestWebhook_NeverDowngradesTerminalOrders(t *testing.T) {
	repo := order.NewInMemoryRepository([]order.Order{{
		ID:     "ord_shipped",
		Status: order.StatusShipped,
	}})
	app := makeApp(&fakeGateway{}, order.NewService(repo))

	body := completedEventBody("ord_shipped", "cs_9")
	header := SignPayload(time.Now(), body, testSecret)
	if code := postWebhook(t, app, body, header); code != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	ord, _ := repo.GetByID("ord_shipped")
	if ord.Status != order.StatusShipped || ord.StripeSessionID != "" {
		t.Fatalf("terminal order was modified: %+v", ord)
	}
}

func TestWebhook_MissingOrderIsRetryable(t *testing.T) {
	repo := order.NewInMemoryRepository(nil)
	app := makeApp(&fakeGateway{}, order.NewService(repo))

	body := completedEventBody("ord_missing", "cs_2")
	header := SignPayload(time.Now(), body, testSecret)
	if code := postWebhook(t, app, body, header); code != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 for unknown order, got %d", code)
	}
}

func TestWebhook_MissingOrderIDIsAcked(t *testing.T) {
	repo := order.NewInMemoryRepository(nil)
	app := makeApp(&fakeGateway{}, order.NewService(repo))

	body := []byte(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_3","metadata":{}}}}`)
	header := SignPayload(time.Now(), body, testSecret)
	if code := postWebhook(t, app, body, header); code != fiber.StatusOK {
		t.Fatalf("expected 200 ack without orderId, got %d", code)
	}
}

func TestWebhook_IgnoresOtherEventTypes(t *testing.T) {
	app := makeApp(&fakeGateway{}, failingOrders{t: t})

	body := []byte(`{"id":"evt_3","type":"payment_intent.created","data":{"object":{"id":"pi_1"}}}`)
	header := SignPayload(time.Now(), body, testSecret)
	if code := postWebhook(t, app, body, header); code != fiber.StatusOK {
		t.Fatalf("expected 200 ack for unknown type, got %d", code)
	}
}

func TestWebhook_BadSignatureNeverTouchesStore(t *testing.T) {
	app := makeApp(&fakeGateway{}, failingOrders{t: t})

	body := completedEventBody("ord_1", "cs_1")
	header := SignPayload(time.Now(), body, "whsec_wrong")
	if code := postWebhook(t, app, body, header); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad signature, got %d", code)
	}
	if code := postWebhook(t, app, body, ""); code != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing header, got %d", code)
	}
}

// failingOrders fails the test when the handler reaches the store.
type failingOrders struct {
	t *testing.T
}

func (f failingOrders) ConfirmPayment(orderID string, sessionID string) (order.Order, error) {
	f.t.Errorf("store must not be touched, got ConfirmPayment(%q, %q)", orderID, sessionID)
	return order.Order{}, nil
}
