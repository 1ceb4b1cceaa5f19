// Package live serves the socket.io channel that re-renders a page without a
// full reload.
//
// A client emits "render" with the current selection and widget values and
// receives "rendered" with the page fragment. Sessions are shared with the
// HTTP surface: the payload carries the session id embedded in the page.
package live
