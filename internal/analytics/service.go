package analytics

import (
	"errors"
	"time"
)

var ErrInvalidEvent = errors.New("event type is required")

type ServiceInterface interface {
	Record(ev Event) (Event, error)
	Summary(days int) ([]DayCount, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ev Event) (Event, error) {
	if ev.Type == "" {
		return Event{}, ErrInvalidEvent
	}
	ev.ID = ""
	ev.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Insert(ev)
}

// Summary returns per-day event counts covering today and the previous
// days-1 days. Days without events are filled in with zero so the
// dashboard chart has a continuous axis.
func (s *Service) Summary(days int) ([]DayCount, error) {
	if days < 1 {
		days = 1
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -(days - 1))

	counts, err := s.repo.CountByDay(since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int, len(counts))
	for _, dc := range counts {
		byDay[dc.Date] = dc.Count
	}

	out := make([]DayCount, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		day := d.Format("2006-01-02")
		out = append(out, DayCount{Date: day, Count: byDay[day]})
	}
	return out, nil
}
