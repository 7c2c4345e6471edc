package favorite

import (
	"testing"

	"github.com/groshop/grocery-shop-backend/internal/product"
)

func newTestService() *Service {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Bread"},
		{ID: 2, Name: "Milk"},
	})
	return NewService(NewInMemoryRepository([]int{7}), products)
}

func TestToggle(t *testing.T) {
	svc := newTestService()

	ids, added, err := svc.Toggle(7, 1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !added || len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected [1] added, got %v added=%v", ids, added)
	}

	ids, added, err = svc.Toggle(7, 2)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !added || len(ids) != 2 {
		t.Fatalf("expected two favorites, got %v", ids)
	}

	ids, added, err = svc.Toggle(7, 1)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if added || len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2] after removal, got %v added=%v", ids, added)
	}
}

func TestToggleUnknownUser(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.Toggle(42, 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListProductsSkipsVanishedEntries(t *testing.T) {
	svc := newTestService()
	svc.Toggle(7, 1)
	// stale favorite pointing at a product no longer in the catalog
	svc.repo.Add(7, 99, "")

	products, err := svc.ListProducts(7)
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products) != 1 || products[0].ID != 1 {
		t.Fatalf("expected only existing products, got %+v", products)
	}
}
