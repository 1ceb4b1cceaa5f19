package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
)

// RegisterPage binds a page to a locator. Registering the same locator twice
// is a programming error and panics.
func (r *Registry) RegisterPage(loc locator.Locator, p page.Page) {
	if loc.IsZero() {
		panic("cannot register a page under an empty locator")
	}
	if p == nil {
		panic(fmt.Sprintf("page for locator '%s' is nil", loc))
	}
	key := loc.String()
	if _, exists := r.pages[key]; exists {
		panic(fmt.Sprintf("page with locator '%s' already registered", key))
	}
	slog.Debug("Registering page.", "locator", key)
	r.pages[key] = p
}

// RegisterPageFunc is RegisterPage for a plain function.
func (r *Registry) RegisterPageFunc(loc locator.Locator, fn func(pc *page.Context) error) {
	r.RegisterPage(loc, page.Func(fn))
}

// Page looks up the page registered for a locator.
func (r *Registry) Page(loc locator.Locator) (page.Page, bool) {
	p, ok := r.pages[loc.String()]
	return p, ok
}

// Pages returns the registered locators, sorted.
func (r *Registry) Pages() []string {
	out := make([]string, 0, len(r.pages))
	for k := range r.pages {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
