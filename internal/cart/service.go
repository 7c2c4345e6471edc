package cart

import (
	"errors"
	"sort"
	"time"

	"github.com/groshop/grocery-shop-backend/internal/order"
	"github.com/groshop/grocery-shop-backend/internal/product"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart is empty")
)

type ServiceInterface interface {
	Get(userID int) ([]Item, error)
	Add(userID, productID, qty int) ([]Item, error)
	SetQty(userID, productID, qty int) ([]Item, error)
	Remove(userID, productID int) ([]Item, error)
	Clear(userID int) error
	Snapshot(userID int) ([]order.Item, error)
}

// Service joins stored quantities with the live catalog.
type Service struct {
	repo     Repository
	products product.Repository
}

func NewService(repo Repository, products product.Repository) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Get(userID int) ([]Item, error) {
	quantities, err := s.repo.GetQuantities(userID)
	if err != nil {
		return nil, err
	}
	return s.join(quantities)
}

// Add increments the quantity of a product; negative qty decrements and
// the entry disappears when it reaches zero.
func (s *Service) Add(userID, productID, qty int) ([]Item, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if err == product.ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	quantities, err := s.repo.GetQuantities(userID)
	if err != nil {
		return nil, err
	}
	next := quantities[productID] + qty
	if next <= 0 {
		delete(quantities, productID)
	} else {
		quantities[productID] = next
	}
	if err := s.save(userID, quantities); err != nil {
		return nil, err
	}
	return s.join(quantities)
}

// SetQty pins a product's quantity; zero or below removes the line.
func (s *Service) SetQty(userID, productID, qty int) ([]Item, error) {
	if qty > 0 {
		if _, err := s.products.GetByID(productID); err != nil {
			if err == product.ErrNotFound {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
	}
	quantities, err := s.repo.GetQuantities(userID)
	if err != nil {
		return nil, err
	}
	if qty <= 0 {
		delete(quantities, productID)
	} else {
		quantities[productID] = qty
	}
	if err := s.save(userID, quantities); err != nil {
		return nil, err
	}
	return s.join(quantities)
}

func (s *Service) Remove(userID, productID int) ([]Item, error) {
	return s.SetQty(userID, productID, 0)
}

func (s *Service) Clear(userID int) error {
	return s.save(userID, map[int]int{})
}

// Snapshot freezes the cart into order line items. Names and effective
// prices are captured now; later catalog changes do not reach the order.
// Products that vanished from the catalog are skipped.
func (s *Service) Snapshot(userID int) ([]order.Item, error) {
	items, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	out := make([]order.Item, 0, len(items))
	for _, it := range items {
		out = append(out, order.Item{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Price:     it.Product.EffectivePrice(),
			Qty:       it.Qty,
		})
	}
	return out, nil
}

func (s *Service) save(userID int, quantities map[int]int) error {
	now := time.Now().UTC().Format(time.RFC3339)
	return s.repo.SaveQuantities(userID, quantities, now)
}

func (s *Service) join(quantities map[int]int) ([]Item, error) {
	out := make([]Item, 0, len(quantities))
	for pid, qty := range quantities {
		p, err := s.products.GetByID(pid)
		if err != nil {
			if err == product.ErrNotFound {
				// stale cart entry, drop silently
				continue
			}
			return nil, err
		}
		out = append(out, Item{Product: p, Qty: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product.ID < out[j].Product.ID })
	return out, nil
}
