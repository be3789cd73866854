package controllers

import (
	"net/http"

	"github.com/build0hq/storefront-session/api/responses"
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/build0hq/storefront-session/pkg/logger"
)

type storefrontResponse struct {
	Status     string              `json:"status"`
	Storefront *catalog.Storefront `json:"storefront,omitempty"`
	Products   []catalog.Product   `json:"products,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func storefrontView(result catalog.Result) storefrontResponse {
	resp := storefrontResponse{Status: string(result.Status)}
	switch result.Status {
	case catalog.StatusReady:
		if result.Data != nil {
			resp.Storefront = &result.Data.Storefront
			resp.Products = result.Data.Products
		}
	case catalog.StatusFailed:
		if result.Error != nil {
			resp.Error = result.Error.Error()
		}
	}
	return resp
}

// StorefrontFetch reports the catalog's current read state without
// triggering a fetch. A failed state stays failed until refreshed.
func StorefrontFetch(resource *catalog.Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, storefrontView(resource.Get()))
	}
}

// StorefrontRefresh re-fetches the catalog and returns the resulting state.
func StorefrontRefresh(resource *catalog.Resource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, storefrontView(resource.Refresh(r.Context())))
	}
}
