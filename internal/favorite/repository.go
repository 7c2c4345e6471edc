package favorite

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("user not found")

// Repository stores the per-user favorite product id list. Order of
// insertion is preserved.
type Repository interface {
	GetIDs(userID int) ([]int, error)
	Add(userID int, productID int, updatedAt string) ([]int, error)
	Remove(userID int, productID int, updatedAt string) ([]int, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu        sync.RWMutex
	favorites map[int][]int
}

func NewInMemoryRepository(userIDs []int) *InMemoryRepository {
	r := &InMemoryRepository{favorites: make(map[int][]int, len(userIDs))}
	for _, id := range userIDs {
		r.favorites[id] = []int{}
	}
	return r
}

func (r *InMemoryRepository) GetIDs(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.favorites[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

func (r *InMemoryRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.favorites[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, id := range ids {
		if id == productID {
			out := make([]int, len(ids))
			copy(out, ids)
			return out, nil
		}
	}
	ids = append(ids, productID)
	r.favorites[userID] = ids
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

func (r *InMemoryRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.favorites[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	r.favorites[userID] = out
	res := make([]int, len(out))
	copy(res, out)
	return res, nil
}
