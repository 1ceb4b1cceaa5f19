package testutil

import (
	"github.com/vk/aplab/internal/locator"
	"github.com/vk/aplab/internal/page"
	"github.com/vk/aplab/internal/registry"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single page.
type SimpleModule struct {
	Locator string
	Page    page.Page
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.RegisterPage(locator.MustParse(m.Locator), m.Page)
}

// StaticModule returns a module whose page writes text at loc.
func StaticModule(loc, text string) *SimpleModule {
	return &SimpleModule{
		Locator: loc,
		Page: page.Func(func(pc *page.Context) error {
			pc.Text(text)
			return nil
		}),
	}
}
