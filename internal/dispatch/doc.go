// Package dispatch runs one render pass: it resolves a (category, topic)
// selection to a page through the registry, invokes the page against a fresh
// surface and the learner's session, and turns whatever happens into an
// Outcome.
//
// Nothing escapes Render. Unknown selections, missing pages, page errors and
// page panics all become failure outcomes whose message names the offending
// label or locator; the partial output produced before a failure is kept.
package dispatch
