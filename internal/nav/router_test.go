package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterStartsOnBrowse(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	assert.Equal(t, PageBrowse, router.Current())
	assert.Equal(t, View{Name: "browse", Found: true}, router.CurrentView())
}

func TestRouterNavigation(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	view := router.GoToCart()
	assert.Equal(t, View{Name: "cart", Found: true}, view)
	assert.Equal(t, PageCart, router.Current())

	view = router.GoToBrowse()
	assert.Equal(t, View{Name: "browse", Found: true}, view)
	assert.Equal(t, PageBrowse, router.Current())
}

func TestGoToPageByName(t *testing.T) {
	t.Parallel()

	router := NewRouter()

	view := router.GoToPage("cart")
	assert.Equal(t, View{Name: "cart", Found: true}, view)
	assert.Equal(t, PageCart, router.Current())
}

func TestGoToPageUnknownTargetKeepsCurrentPage(t *testing.T) {
	t.Parallel()

	router := NewRouter()
	router.GoToCart()

	view := router.GoToPage("settings")
	assert.Equal(t, View{Name: ViewNotFound, Found: false}, view)
	assert.Equal(t, PageCart, router.Current())
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, Known("browse"))
	assert.True(t, Known("cart"))
	assert.False(t, Known("settings"))
	assert.False(t, Known(""))
}
