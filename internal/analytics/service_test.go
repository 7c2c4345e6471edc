package analytics

import (
	"testing"
	"time"
)

func TestRecordStampsEvent(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	ev, err := svc.Record(Event{Type: "page_view", VisitorID: "v1", Path: "/products"})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if ev.ID == "" || ev.CreatedAt == "" {
		t.Fatalf("expected id and timestamp, got %+v", ev)
	}
	if _, err := time.Parse(time.RFC3339, ev.CreatedAt); err != nil {
		t.Fatalf("createdAt not RFC3339: %q", ev.CreatedAt)
	}
}

func TestRecordRejectsMissingType(t *testing.T) {
	svc := NewService(NewInMemoryRepository())
	if _, err := svc.Record(Event{VisitorID: "v1"}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestSummaryFillsMissingDays(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	stamp := func(daysAgo int) string {
		return today.AddDate(0, 0, -daysAgo).Format(time.RFC3339)
	}
	repo.Insert(Event{Type: "page_view", CreatedAt: stamp(0)})
	repo.Insert(Event{Type: "page_view", CreatedAt: stamp(0)})
	repo.Insert(Event{Type: "add_to_cart", CreatedAt: stamp(2)})
	// outside the window
	repo.Insert(Event{Type: "page_view", CreatedAt: stamp(10)})

	summary, err := svc.Summary(3)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("expected 3 days, got %d", len(summary))
	}
	if summary[0].Count != 1 || summary[1].Count != 0 || summary[2].Count != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary[2].Date != today.Format("2006-01-02") {
		t.Fatalf("expected last bucket to be today, got %s", summary[2].Date)
	}
}
