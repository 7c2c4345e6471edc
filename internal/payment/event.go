package payment

// EventCheckoutCompleted is the only event type this service reacts to.
// Everything else is acknowledged and dropped so the gateway stops
// redelivering it.
const EventCheckoutCompleted = "checkout.session.completed"

// SessionObject is the checkout session embedded in a webhook event.
type SessionObject struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// Event is a gateway webhook notification.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object SessionObject `json:"object"`
	} `json:"data"`
}
