package cart

import (
	"github.com/groshop/grocery-shop-backend/internal/product"
)

// Item is a cart line joined with its current catalog entry. Prices
// shown here are live; they only become fixed when an order snapshots
// them.
type Item struct {
	Product product.Product `json:"product"`
	Qty     int             `json:"qty"`
}
