package cart

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("user not found")

// Repository stores per-user cart quantities keyed by product id. The
// product join happens at the service layer.
type Repository interface {
	GetQuantities(userID int) (map[int]int, error)
	SaveQuantities(userID int, quantities map[int]int, updatedAt string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]map[int]int
}

func NewInMemoryRepository(userIDs []int) *InMemoryRepository {
	r := &InMemoryRepository{carts: make(map[int]map[int]int, len(userIDs))}
	for _, id := range userIDs {
		r.carts[id] = make(map[int]int)
	}
	return r
}

func (r *InMemoryRepository) GetQuantities(userID int) (map[int]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make(map[int]int, len(cart))
	for pid, qty := range cart {
		out[pid] = qty
	}
	return out, nil
}

func (r *InMemoryRepository) SaveQuantities(userID int, quantities map[int]int, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[userID]; !ok {
		return ErrNotFound
	}
	cart := make(map[int]int, len(quantities))
	for pid, qty := range quantities {
		cart[pid] = qty
	}
	r.carts[userID] = cart
	return nil
}
