package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/api/validators"
	"github.com/build0hq/storefront-session/internal/cart"
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/build0hq/storefront-session/internal/session"
	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
	"github.com/build0hq/storefront-session/pkg/logger"
)

type cartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

func cartView(engine *cart.Engine) cartResponse {
	items := engine.Items()
	lines := make([]cartLineResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, cartLineResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return cartResponse{
		Items: lines,
		Total: engine.Total(),
		Count: engine.ItemCount(),
	}
}

// CartFetch returns the session's cart contents.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		var view cartResponse
		sess.Do(func(s *session.Session) {
			view = cartView(s.Cart)
		})
		responses.WriteSuccess(w, view)
	}
}

type pendingAdjustRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Delta     *int   `json:"delta" validate:"required"`
}

type pendingQuantityResponse struct {
	ProductID string `json:"product_id"`
	Pending   int    `json:"pending"`
}

// CartPendingAdjust nudges a product's staged quantity up or down. The
// staged value never goes below zero.
func CartPendingAdjust(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body pendingAdjustRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		var pending int
		sess.Do(func(s *session.Session) {
			pending = s.Cart.AdjustPending(body.ProductID, *body.Delta)
		})

		responses.WriteSuccess(w, pendingQuantityResponse{
			ProductID: body.ProductID,
			Pending:   pending,
		})
	}
}

// CartPendingFetch returns every staged quantity for the session.
func CartPendingFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		var pending map[string]int
		sess.Do(func(s *session.Session) {
			pending = s.Cart.Pending()
		})
		responses.WriteSuccess(w, map[string]any{"pending": pending})
	}
}

type commitItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity,omitempty"`
}

type commitItemResponse struct {
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Cart      cartResponse `json:"cart"`
}

// CartCommit adds a product to the cart. Without an explicit quantity the
// staged quantity is used, and a staged quantity of zero commits a single
// unit. The product has to exist in the loaded catalog.
func CartCommit(resource *catalog.Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body commitItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := resource.Get()
		if result.Status != catalog.StatusReady {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "catalog is not loaded"))
			return
		}

		product, ok := resource.Product(body.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		var resp commitItemResponse
		sess.Do(func(s *session.Session) {
			var qty int
			if body.Quantity != nil {
				qty = s.Cart.CommitQuantity(product, *body.Quantity)
			} else {
				qty = s.Cart.Commit(product)
			}
			resp = commitItemResponse{
				ProductID: product.ID,
				Quantity:  qty,
				Cart:      cartView(s.Cart),
			}
		})

		responses.WriteSuccess(w, resp)
	}
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartSetQuantity overwrites a line's quantity in place. Zero or below
// removes the line.
func CartSetQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		var body setQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess := middleware.SessionFromContext(r.Context())
		var view cartResponse
		sess.Do(func(s *session.Session) {
			s.Cart.SetItemQuantity(productID, *body.Quantity)
			view = cartView(s.Cart)
		})

		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem drops a line from the cart. Removing an absent line is a
// no-op.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")

		sess := middleware.SessionFromContext(r.Context())
		var view cartResponse
		sess.Do(func(s *session.Session) {
			s.Cart.RemoveItem(productID)
			view = cartView(s.Cart)
		})

		responses.WriteSuccess(w, view)
	}
}
