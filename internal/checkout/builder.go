package checkout

import "github.com/build0hq/storefront-session/internal/cart"

// ProductItem is one (product, quantity) pair in the wire request.
type ProductItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Request is the payload posted to the payment-checkout endpoint.
type Request struct {
	ProductItems []ProductItem `json:"product_items"`
}

// BuildRequest projects a cart snapshot into the checkout wire shape: one
// pair per line, in cart order. Identical carts always produce identical
// requests; the engine guarantees no zero or negative quantities reach here.
func BuildRequest(items []cart.Item) Request {
	req := Request{ProductItems: make([]ProductItem, 0, len(items))}
	for _, item := range items {
		req.ProductItems = append(req.ProductItems, ProductItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}
	return req
}
