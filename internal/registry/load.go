package registry

import (
	"context"
	"fmt"

	"github.com/vk/aplab/internal/catalog"
	"github.com/vk/aplab/internal/ctxlog"
)

// Load builds a registry from the embedded catalog and lets each module
// register its pages.
func Load(ctx context.Context, modules ...Module) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)

	cat, err := catalog.Default(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topic catalog: %w", err)
	}

	r := New(cat)
	for _, m := range modules {
		m.Register(r)
	}

	logger.Debug("Registry loaded.", "categories", len(r.categories), "pages", len(r.pages))
	return r, nil
}
