package category

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	List() ([]Category, error)
	ListSubcategories(categoryID string) ([]Subcategory, error)
	// Reset replaces all categories and subcategories (used by seeding).
	Reset(categories []Category) error
}

// InMemoryRepository keeps the category tree in memory for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) ListSubcategories(categoryID string) ([]Subcategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.storage {
		if c.ID == categoryID {
			out := make([]Subcategory, len(c.Subcategories))
			copy(out, c.Subcategories)
			return out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) Reset(categories []Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = make([]Category, 0, len(categories))
	r.storage = append(r.storage, categories...)
	return nil
}
