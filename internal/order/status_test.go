package order

import "testing"

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusPendingPayment, StatusPaid, StatusShipped, StatusCancelled} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []Status{"", "unknown", "PAID"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusShipped.Terminal() || !StatusCancelled.Terminal() {
		t.Fatal("shipped and cancelled must be terminal")
	}
	for _, s := range []Status{StatusNew, StatusPendingPayment, StatusPaid} {
		if s.Terminal() {
			t.Fatalf("%q must not be terminal", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusNew, StatusPaid},
		{StatusNew, StatusShipped},
		{StatusNew, StatusCancelled},
		{StatusPendingPayment, StatusPaid},
		{StatusPendingPayment, StatusCancelled},
		{StatusPaid, StatusShipped},
		{StatusPaid, StatusCancelled},
		{StatusCancelled, StatusNew},
		{StatusCancelled, StatusPaid},
		{StatusCancelled, StatusShipped},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusNew, StatusPendingPayment},
		{StatusPendingPayment, StatusShipped},
		{StatusPaid, StatusNew},
		{StatusShipped, StatusPaid},
		{StatusShipped, StatusCancelled},
		{StatusPaid, StatusPaid},
		{StatusNew, "unknown"},
		{"unknown", StatusPaid},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}
