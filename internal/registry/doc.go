// Package registry is the glue between the topic catalog and the compiled
// lesson pages.
//
// The Registry answers the navigation questions (which categories exist,
// which topics a category holds, which locator a topic maps to) from the
// ordered catalog, and holds the page table filled in by lesson modules at
// startup. Both are read-only once the application starts serving.
//
// During startup the registry is validated so that every catalog locator has
// a page and every registered page is reachable from the catalog.
package registry
