package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build0hq/storefront-session/api/middleware"
	"github.com/build0hq/storefront-session/internal/catalog"
	"github.com/build0hq/storefront-session/internal/session"
	"github.com/build0hq/storefront-session/pkg/config"
)

type stubFetcher struct {
	data *catalog.StorefrontData
	err  error
}

func (s *stubFetcher) FetchStorefront(context.Context, string) (*catalog.StorefrontData, error) {
	return s.data, s.err
}

func readyResource(t *testing.T) *catalog.Resource {
	t.Helper()
	resource := catalog.NewResource(&stubFetcher{data: &catalog.StorefrontData{
		Storefront: catalog.Storefront{ID: "sf-1", Title: "Build0 Shop"},
		Products: []catalog.Product{
			{ID: "p-1", Name: "Sticker Pack"},
		},
	}}, "sf-1", nil, nil)
	resource.Refresh(context.Background())
	return resource
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	hub := session.NewHub(config.SessionConfig{IdleTTL: time.Hour}, nil, nil)
	return hub.Create()
}

func sessionRequest(t *testing.T, sess *session.Session, method, target, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithSession(req.Context(), sess))
}

func TestCartFetchEmpty(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartFetch(nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodGet, "/api/v1/cart", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
	assert.Contains(t, rec.Body.String(), `"count":0`)
}

func TestCartPendingAdjustClampsAtZero(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartPendingAdjust(nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/pending", `{"product_id":"p-1","delta":-3}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pending":0`)
}

func TestCartPendingAdjustRejectsMissingDelta(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartPendingAdjust(nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/pending", `{"product_id":"p-1"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartCommitRequiresLoadedCatalog(t *testing.T) {
	t.Parallel()

	resource := catalog.NewResource(&stubFetcher{}, "sf-1", nil, nil)

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartCommit(resource, nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p-1"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCartCommitUnknownProduct(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartCommit(readyResource(t), nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/items", `{"product_id":"ghost"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartCommitAddsLine(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartCommit(readyResource(t), nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p-1"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":1`)
}

func TestCartCommitExplicitQuantity(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	rec := httptest.NewRecorder()
	CartCommit(readyResource(t), nil).ServeHTTP(rec, sessionRequest(t, sess, http.MethodPost, "/api/v1/cart/items", `{"product_id":"p-1","quantity":4}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"quantity":4`)
}

func TestCartSetQuantityURLParam(t *testing.T) {
	t.Parallel()

	sess := newSession(t)
	sess.Do(func(s *session.Session) {
		s.Cart.CommitQuantity(catalog.Product{ID: "p-1", Name: "Sticker Pack"}, 2)
	})

	r := chi.NewRouter()
	r.Put("/api/v1/cart/items/{productId}", CartSetQuantity(nil))

	req := sessionRequest(t, sess, http.MethodPut, "/api/v1/cart/items/p-1", `{"quantity":7}`)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":7`)
}
