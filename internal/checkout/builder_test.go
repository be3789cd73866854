package checkout

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/build0hq/storefront-session/internal/cart"
	"github.com/build0hq/storefront-session/internal/catalog"
)

func snapshotFixture() []cart.Item {
	return []cart.Item{
		{Product: catalog.Product{ID: "p-1", Name: "Sticker Pack", Price: decimal.NewFromFloat(4.50)}, Quantity: 2},
		{Product: catalog.Product{ID: "p-2", Name: "Tote Bag", Price: decimal.NewFromFloat(16.50)}, Quantity: 1},
	}
}

func TestBuildRequestProjectsCartOrder(t *testing.T) {
	t.Parallel()

	req := BuildRequest(snapshotFixture())

	require.Len(t, req.ProductItems, 2)
	assert.Equal(t, ProductItem{ProductID: "p-1", Quantity: 2}, req.ProductItems[0])
	assert.Equal(t, ProductItem{ProductID: "p-2", Quantity: 1}, req.ProductItems[1])
}

func TestBuildRequestEmptySnapshot(t *testing.T) {
	t.Parallel()

	req := BuildRequest(nil)

	require.NotNil(t, req.ProductItems)
	assert.Empty(t, req.ProductItems)
}

func TestBuildRequestDeterministic(t *testing.T) {
	t.Parallel()

	first := BuildRequest(snapshotFixture())
	second := BuildRequest(snapshotFixture())

	assert.Equal(t, first, second)
}

func TestRequestWireShape(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(BuildRequest(snapshotFixture()))
	require.NoError(t, err)

	assert.JSONEq(t, `{"product_items":[{"product_id":"p-1","quantity":2},{"product_id":"p-2","quantity":1}]}`, string(payload))
}
