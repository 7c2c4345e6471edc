package analytics

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ev Event) (Event, error)
	// CountByDay buckets events on the date prefix of CreatedAt,
	// restricted to dates >= since (RFC3339 date, inclusive).
	CountByDay(since string) ([]DayCount, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{events: make([]Event, 0)}
}

func (r *InMemoryRepository) Insert(ev Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	r.events = append(r.events, ev)
	return ev, nil
}

func (r *InMemoryRepository) CountByDay(since string) ([]DayCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, ev := range r.events {
		day := datePrefix(ev.CreatedAt)
		if day == "" || day < since {
			continue
		}
		counts[day]++
	}

	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Date: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// datePrefix cuts an RFC3339 timestamp down to its date part.
func datePrefix(ts string) string {
	day, _, found := strings.Cut(ts, "T")
	if !found || len(day) != 10 {
		return ""
	}
	return day
}
