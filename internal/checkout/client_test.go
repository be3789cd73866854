package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/build0hq/storefront-session/pkg/errors"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("   ")
	require.Error(t, err)
}

func TestSubmitPostsWirePayload(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotBody Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"checkout_url":"https://pay.example.com/c/abc123"}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	resp, err := client.Submit(context.Background(), "sf-1", Request{
		ProductItems: []ProductItem{{ProductID: "p-1", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/storefront/sf-1/checkout", gotPath)
	assert.Equal(t, Request{ProductItems: []ProductItem{{ProductID: "p-1", Quantity: 2}}}, gotBody)
	assert.Equal(t, "https://pay.example.com/c/abc123", resp.CheckoutURL)
}

func TestSubmitRejectsBlankStorefront(t *testing.T) {
	t.Parallel()

	client, err := NewClient("https://example.com")
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), "", Request{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSubmitNonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), "sf-1", Request{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, details["status"])
	assert.Equal(t, "upstream unavailable", details["body"])
}

func TestSubmitMissingCheckoutURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), "sf-1", Request{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
	assert.Contains(t, typed.Message(), "checkout_url")
}

func TestSubmitMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"checkout_url":`)
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), "sf-1", Request{})
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
