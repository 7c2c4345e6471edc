package analytics

// Event is a lightweight client-side telemetry record: page views,
// add-to-cart clicks, checkout funnel steps.
type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	VisitorID string         `json:"visitorId"`
	Path      string         `json:"path,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt string         `json:"createdAt"`
}

// DayCount is one bar of the dashboard chart.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
