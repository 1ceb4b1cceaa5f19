package dispatch

import (
	"fmt"

	"github.com/vk/aplab/internal/locator"
)

// HandlerLoadError reports a resolved locator with no registered page.
type HandlerLoadError struct {
	Locator locator.Locator
}

func (e *HandlerLoadError) Error() string {
	return fmt.Sprintf("no page registered for locator '%s'", e.Locator)
}

// HandlerRuntimeError reports a page that failed during Show, by returning
// an error or by panicking.
type HandlerRuntimeError struct {
	Locator locator.Locator
	Cause   error
	Panic   any    // recovered value; nil when Show returned an error
	Stack   []byte // stack at the panic site; nil when Show returned an error
}

func (e *HandlerRuntimeError) Error() string {
	return fmt.Sprintf("page '%s' failed: %v", e.Locator, e.Cause)
}

func (e *HandlerRuntimeError) Unwrap() error { return e.Cause }
