package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/build0hq/storefront-session/pkg/logger"
	"github.com/build0hq/storefront-session/pkg/metrics"
)

// Status is the read-side state of the catalog resource.
type Status string

const (
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
	StatusReady   Status = "ready"
)

// Result is the snapshot handed to consumers. Exactly one of Data / Error is
// meaningful depending on Status.
type Result struct {
	Status Status
	Data   *StorefrontData
	Error  error
}

type fetcher interface {
	FetchStorefront(ctx context.Context, storefrontID string) (*StorefrontData, error)
}

// Resource wraps the storefront fetch in a loading/failed/ready state with an
// explicit retry. Consumers never trigger fetches implicitly; a failed state
// stays failed until Refresh is called again.
type Resource struct {
	client       fetcher
	storefrontID string
	logg         *logger.Logger
	metrics      *metrics.CatalogMetrics

	mu       sync.Mutex
	status   Status
	data     *StorefrontData
	lastErr  error
	inFlight bool
}

// NewResource builds a catalog resource in the loading state.
func NewResource(client fetcher, storefrontID string, logg *logger.Logger, m *metrics.CatalogMetrics) *Resource {
	return &Resource{
		client:       client,
		storefrontID: storefrontID,
		logg:         logg,
		metrics:      m,
		status:       StatusLoading,
	}
}

// Get returns the current read state.
func (r *Resource) Get() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Result{Status: r.status, Data: r.data, Error: r.lastErr}
}

// Refresh performs the fetch and transitions the resource to ready or failed.
// Concurrent refreshes collapse into one upstream call.
func (r *Resource) Refresh(ctx context.Context) Result {
	r.mu.Lock()
	if r.inFlight {
		result := Result{Status: StatusLoading}
		r.mu.Unlock()
		return result
	}
	r.inFlight = true
	r.status = StatusLoading
	r.mu.Unlock()

	start := time.Now()
	data, err := r.client.FetchStorefront(ctx, r.storefrontID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = false

	if err != nil {
		r.status = StatusFailed
		r.lastErr = err
		r.metrics.ObserveFetch(r.storefrontID, "failure", time.Since(start))
		if r.logg != nil {
			r.logg.Error(ctx, "catalog fetch failed", err)
		}
		return Result{Status: r.status, Error: err}
	}

	r.status = StatusReady
	r.data = data
	r.lastErr = nil
	r.metrics.ObserveFetch(r.storefrontID, "success", time.Since(start))
	if r.logg != nil {
		ctx = r.logg.WithFields(ctx, map[string]any{
			"storefront_id": r.storefrontID,
			"products":      len(data.Products),
		})
		r.logg.Info(ctx, "catalog loaded")
	}
	return Result{Status: r.status, Data: r.data}
}

// Products returns the product list when ready, or nil otherwise.
func (r *Resource) Products() []Product {
	result := r.Get()
	if result.Status != StatusReady || result.Data == nil {
		return nil
	}
	return result.Data.Products
}

// Product looks up a product by identifier in the ready catalog.
func (r *Resource) Product(id string) (Product, bool) {
	result := r.Get()
	if result.Status != StatusReady {
		return Product{}, false
	}
	return result.Data.FindProduct(id)
}
