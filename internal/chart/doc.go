// Package chart builds declarative figure descriptions for the browser-side
// plotting library. A Figure is plain data: traces plus layout, serialised to
// JSON and drawn by the client. Nothing here rasterises.
package chart
