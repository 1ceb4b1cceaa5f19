// Package server is the HTTP host. Every page request is one render pass:
// the handler resolves the learner's locale and session, hands the selection
// and submitted widget values to the dispatcher and wraps the outcome in the
// page layout.
//
// Routes:
//
//	GET  /              first topic of the first category, or ?category=&topic=
//	GET  /topic         same as /
//	POST /topic         widget interaction
//	GET  /api/catalog   ordered catalog as JSON
//	GET  /health        liveness
//	GET  /metrics       Prometheus exposition
//	*    /socket.io/    live channel, when enabled
package server
