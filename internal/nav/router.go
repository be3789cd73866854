// Package nav tracks which page of the storefront a session is viewing.
package nav

// Page identifies a storefront view.
type Page string

const (
	PageBrowse Page = "browse"
	PageCart   Page = "cart"
)

// ViewNotFound is returned for navigation targets the router does not know.
const ViewNotFound = "not_found"

// View is the resolved state of a navigation request.
type View struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
}

// Router holds the current page for one session. It is not safe for
// concurrent use; the owning session serializes access.
type Router struct {
	current Page
}

// NewRouter starts on the browse page.
func NewRouter() *Router {
	return &Router{current: PageBrowse}
}

// Current returns the page the session is on.
func (r *Router) Current() Page {
	return r.current
}

// CurrentView resolves the current page as a view.
func (r *Router) CurrentView() View {
	return View{Name: string(r.current), Found: true}
}

// GoToBrowse navigates to the product listing.
func (r *Router) GoToBrowse() View {
	r.current = PageBrowse
	return r.CurrentView()
}

// GoToCart navigates to the cart page.
func (r *Router) GoToCart() View {
	r.current = PageCart
	return r.CurrentView()
}

// GoToPage navigates to a named target. An unknown target resolves to the
// not-found view and leaves the current page unchanged.
func (r *Router) GoToPage(target string) View {
	switch Page(target) {
	case PageBrowse:
		return r.GoToBrowse()
	case PageCart:
		return r.GoToCart()
	}
	return View{Name: ViewNotFound, Found: false}
}

// Known reports whether target names a real page.
func Known(target string) bool {
	switch Page(target) {
	case PageBrowse, PageCart:
		return true
	}
	return false
}
