package order

// Status is the order lifecycle state.
//
//	new             cash-on-delivery default
//	pending_payment gateway session created, not yet confirmed
//	paid            gateway confirmed, or admin marked
//	shipped         admin-only forward transition, final
//	cancelled       admin-only; blocks any later automatic transition
type Status string

const (
	StatusNew            Status = "new"
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusShipped        Status = "shipped"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusPendingPayment, StatusPaid, StatusShipped, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether automatic (payment-driven) transitions out of
// this status are forbidden.
func (s Status) Terminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// CanTransition reports whether an admin may move an order between the
// two statuses. A cancelled order may be corrected back to any status;
// shipped is final.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	if !from.Valid() || !to.Valid() {
		return false
	}
	switch from {
	case StatusNew:
		return to == StatusPaid || to == StatusShipped || to == StatusCancelled
	case StatusPendingPayment:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return false
	case StatusCancelled:
		// manual correction, unaudited
		return true
	}
	return false
}
