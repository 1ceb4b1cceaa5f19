// Package catalog loads the ordered topic catalog from its HCL manifest.
//
// The manifest declares `category` blocks, each holding `topic` blocks with
// a `locator` attribute naming the page that renders the topic. Block order
// is significant: it is the pedagogical order in which categories and topics
// are presented, so the loader keeps it exactly as written.
//
// The default manifest is embedded into the binary; lesson content is
// compiled in, never read from disk at runtime.
package catalog
