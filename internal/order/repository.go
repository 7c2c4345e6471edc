package order

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("order not found")

// Filter narrows an order listing. Zero values mean "no constraint".
type Filter struct {
	UserID int
	Status Status
	Query  string
}

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	// List returns orders newest first.
	List(f Filter) ([]Order, error)
	SetStatus(id string, status Status, updatedAt string) (Order, error)
	// MarkPaid applies the payment confirmation as a partial update:
	// status=paid, paidAt/updatedAt stamped, session id recorded. It is
	// convergent under redelivery and must never touch an order whose
	// status is shipped or cancelled; such calls return the order as-is.
	MarkPaid(id string, sessionID string, paidAt string) (Order, error)
}

// InMemoryRepository backs tests and local development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{storage: make(map[string]Order, len(seed))}
	for _, ord := range seed {
		r.storage[ord.ID] = ord
	}
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ord.ID == "" {
		ord.ID = uuid.NewString()
	}
	r.storage[ord.ID] = ord
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ord, ok := r.storage[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) List(f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0, len(r.storage))
	for _, ord := range r.storage {
		if f.UserID != 0 && ord.UserID != f.UserID {
			continue
		}
		if f.Status != "" && ord.Status != f.Status {
			continue
		}
		if f.Query != "" && !matchesQuery(ord, f.Query) {
			continue
		}
		out = append(out, ord)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) SetStatus(id string, status Status, updatedAt string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.storage[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	ord.Status = status
	ord.UpdatedAt = updatedAt
	r.storage[id] = ord
	return ord, nil
}

func (r *InMemoryRepository) MarkPaid(id string, sessionID string, paidAt string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ord, ok := r.storage[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if ord.Status.Terminal() {
		return ord, nil
	}
	ord.Status = StatusPaid
	ord.StripeSessionID = sessionID
	ord.PaidAt = paidAt
	ord.UpdatedAt = paidAt
	r.storage[id] = ord
	return ord, nil
}

func matchesQuery(ord Order, q string) bool {
	q = strings.ToLower(q)
	hay := []string{ord.ID, ord.Email, ord.PaymentMethod, string(ord.Status)}
	for _, it := range ord.Items {
		hay = append(hay, it.Name)
	}
	for _, h := range hay {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}
