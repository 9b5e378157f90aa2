// Package tool implements the per-tool interpretation of a touch sequence:
// writing, erasing, rubber-band selection and shape recognition.
//
// A behavior only ever sees logical points. It may keep an in-progress
// overlay (a live stroke, an eraser cursor, a selection box) but touches the
// document and history only through the Context it is handed.
package tool

import (
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/history"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/surface"
)

// Context is the session state a behavior may use during one call.
type Context struct {
	Doc     *document.Document
	History *history.Manager
	// Style is the current pen paint. Behaviors copy it at touch-down.
	Style document.Style
}

// Behavior is one tool. HandleTouch reports whether the view needs a redraw.
type Behavior interface {
	HandleTouch(ctx *Context, phase input.Phase, p geom.Point) bool
	// Reset abandons any gesture in progress and leaves the document and
	// history as they were before it started.
	Reset(ctx *Context)
	// Render draws the live overlay only. Committed strokes are drawn by
	// the session from the document.
	Render(s surface.Surface)
}

// overlayStyle is used for cursors and selection boxes.
var overlayStyle = document.Style{Color: 0xFF808080, Weight: 1}
