package order

// Item is a line-item snapshot captured at checkout time. Later catalog
// price changes never alter historical orders.
type Item struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// Order is the central purchase record. Ids are opaque strings assigned
// by the store at creation.
type Order struct {
	ID              string  `json:"id"`
	UserID          int     `json:"userId"`
	Email           string  `json:"email"`
	Items           []Item  `json:"items"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
	PaymentMethod   string  `json:"paymentMethod"`
	Status          Status  `json:"status"`
	StripeSessionID string  `json:"stripeSessionId,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
	PaidAt          string  `json:"paidAt,omitempty"`
}

const (
	PaymentCOD    = "cod"
	PaymentStripe = "stripe"

	CurrencyEUR = "EUR"
)

// TotalOf sums the line items. The result is stored on the order at
// creation time and never recomputed afterwards.
func TotalOf(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return total
}

// Stats is the back-office order overview.
type Stats struct {
	Total          int     `json:"total"`
	Paid           int     `json:"paid"`
	PendingPayment int     `json:"pendingPayment"`
	CODNew         int     `json:"codNew"`
	Revenue        float64 `json:"revenue"`
}
