package favorite

import (
	"time"

	"github.com/groshop/grocery-shop-backend/internal/product"
)

type ServiceInterface interface {
	Toggle(userID, productID int) ([]int, bool, error)
	ListIDs(userID int) ([]int, error)
	ListProducts(userID int) ([]product.Product, error)
}

type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

// Toggle flips a product in and out of the favorites list and reports
// whether it ended up added.
func (s *Service) Toggle(userID, productID int) ([]int, bool, error) {
	ids, err := s.repo.GetIDs(userID)
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, id := range ids {
		if id == productID {
			out, err := s.repo.Remove(userID, productID, now)
			return out, false, err
		}
	}
	out, err := s.repo.Add(userID, productID, now)
	return out, true, err
}

func (s *Service) ListIDs(userID int) ([]int, error) {
	return s.repo.GetIDs(userID)
}

// ListProducts resolves favorite ids against the catalog, skipping
// products that no longer exist.
func (s *Service) ListProducts(userID int) ([]product.Product, error) {
	ids, err := s.repo.GetIDs(userID)
	if err != nil {
		return nil, err
	}
	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(id)
		if err != nil {
			if err == product.ErrNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
