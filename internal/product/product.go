package product

// Promo mirrors the optional promotion block stored on a product.
// When enabled, an absolute promo price wins over a percent discount.
type Promo struct {
	Enabled bool     `json:"enabled"`
	Label   string   `json:"label,omitempty"`
	Percent *float64 `json:"percent,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	Until   string   `json:"until,omitempty"` // YYYY-MM-DD
}

// Product represents a catalog item. Prices are in EUR.
type Product struct {
	ID            int     `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category,omitempty"`
	CategoryID    string  `json:"categoryId,omitempty"`
	Subcategory   string  `json:"subcategory,omitempty"`
	SubcategoryID string  `json:"subcategoryId,omitempty"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Promo         *Promo  `json:"promo,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// EffectivePrice is what a buyer currently pays: the promo price when a
// promotion is enabled, otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.Promo == nil || !p.Promo.Enabled {
		return p.Price
	}
	if p.Promo.Price != nil && *p.Promo.Price >= 0 {
		return *p.Promo.Price
	}
	if p.Promo.Percent != nil && *p.Promo.Percent > 0 && *p.Promo.Percent <= 100 {
		return p.Price * (1 - *p.Promo.Percent/100)
	}
	return p.Price
}
