package registry

import (
	"context"

	"github.com/vk/aplab/internal/ctxlog"
)

// Validate performs a parity check between the catalog and the page table.
// It returns a *ValidationError listing every mismatch, or nil.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	referenced := make(map[string]struct{})
	verr := &ValidationError{}

	for _, e := range r.Entries() {
		key := e.Locator.String()
		referenced[key] = struct{}{}
		if _, ok := r.pages[key]; !ok {
			verr.Missing = append(verr.Missing, key)
		}
	}
	for _, key := range r.Pages() {
		if _, ok := referenced[key]; !ok {
			verr.Orphans = append(verr.Orphans, key)
		}
	}

	if len(verr.Missing) > 0 || len(verr.Orphans) > 0 {
		return verr
	}

	logger.Debug("Registry validation passed.", "topics", len(referenced), "pages", len(r.pages))
	return nil
}
