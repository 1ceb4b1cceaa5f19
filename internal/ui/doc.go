// Package ui is the output surface lesson pages write to.
//
// A render pass starts from the widget values submitted with the request
// (Inputs) and a fresh Surface. Pages append blocks to the surface in order.
// Every widget call registers the widget at the current position and returns
// its value for this pass: the submitted value when there is one and it
// parses, the declared default otherwise, clamped to any declared bounds.
//
// Widget keys are derived from labels and made unique within the pass, so a
// page that renders the same widgets in the same order gets the same keys on
// every pass.
//
// RenderHTML turns a finished surface into an HTML fragment. Markdown blocks
// go through golang-commonmark; chart blocks are embedded as JSON for the
// client-side plotting library.
package ui
