package catalog

import "github.com/shopspring/decimal"

// Storefront describes the shop whose catalog is being served.
type Storefront struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

// Product is a catalog entry. Immutable from the cart's perspective.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ImageURLs   []string        `json:"image_urls"`
	Metadata    map[string]any  `json:"metadata"`
	CreatedAt   int64           `json:"created_at"`
	UpdatedAt   int64           `json:"updated_at"`
}

// StorefrontData is the full payload returned by the storefront read endpoint.
type StorefrontData struct {
	Storefront Storefront `json:"storefront"`
	Products   []Product  `json:"products"`
}

// FindProduct returns the product with the given identifier, if present.
func (d *StorefrontData) FindProduct(id string) (Product, bool) {
	if d == nil {
		return Product{}, false
	}
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
