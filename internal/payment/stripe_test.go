package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripeGateway_CreateSession(t *testing.T) {
	var gotForm map[string][]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cs_live_1","url":"https://checkout.stripe.com/pay/cs_live_1"}`))
	}))
	defer srv.Close()

	g := NewStripeGatewayWithBaseURL("sk_test_123", srv.URL)
	sess, err := g.CreateSession(context.Background(), SessionRequest{
		Items: []LineItem{
			{Name: "Bread", UnitAmount: 250, Qty: 2},
			{Name: "Milk", UnitAmount: 180, Qty: 1},
		},
		Currency:   "eur",
		SuccessURL: "http://localhost:5173/cart?paid=1",
		CancelURL:  "http://localhost:5173/cart?canceled=1",
		OrderID:    "ord_1",
	})
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if sess.ID != "cs_live_1" || sess.URL == "" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if gotAuth != "Bearer sk_test_123" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}

	want := map[string]string{
		"mode":                                     "payment",
		"success_url":                              "http://localhost:5173/cart?paid=1",
		"cancel_url":                               "http://localhost:5173/cart?canceled=1",
		"metadata[orderId]":                        "ord_1",
		"line_items[0][price_data][currency]":      "eur",
		"line_items[0][price_data][product_data][name]": "Bread",
		"line_items[0][price_data][unit_amount]":        "250",
		"line_items[0][quantity]":                       "2",
		"line_items[1][price_data][product_data][name]": "Milk",
		"line_items[1][price_data][unit_amount]":        "180",
		"line_items[1][quantity]":                       "1",
	}
	for k, v := range want {
		got := gotForm[k]
		if len(got) != 1 || got[0] != v {
			t.Fatalf("form field %q = %v, want %q", k, got, v)
		}
	}
}

func TestStripeGateway_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	g := NewStripeGatewayWithBaseURL("sk_test_123", srv.URL)
	_, err := g.CreateSession(context.Background(), SessionRequest{
		Items: []LineItem{{Name: "Bread", UnitAmount: 250, Qty: 1}},
	})
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
}
