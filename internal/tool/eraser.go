package tool

import (
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/history"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/surface"
)

// DefaultEraserRadius is used when NewEraser gets a non-positive radius.
const DefaultEraserRadius = 8.0

// Eraser removes every stroke its path touches. Hits leave the document
// immediately so the user sees them go, but the whole gesture is recorded
// as one history node on up.
type Eraser struct {
	radius float64

	active  bool
	last    geom.Point
	removed []history.Removal
}

func NewEraser(radius float64) *Eraser {
	if radius <= 0 {
		radius = DefaultEraserRadius
	}
	return &Eraser{radius: radius}
}

// Radius returns the hit radius in logical units.
func (e *Eraser) Radius() float64 {
	return e.radius
}

func (e *Eraser) HandleTouch(ctx *Context, phase input.Phase, p geom.Point) bool {
	switch phase {
	case input.PhaseDown:
		e.active = true
		e.last = p
		e.sweep(ctx, p, p)
		return true
	case input.PhaseMove:
		if !e.active {
			return e.HandleTouch(ctx, input.PhaseDown, p)
		}
		e.sweep(ctx, e.last, p)
		e.last = p
		return true
	case input.PhaseUp:
		if !e.active {
			return false
		}
		e.sweep(ctx, e.last, p)
		if len(e.removed) > 0 {
			ctx.History.Record(history.RemoveStrokes{Removals: e.removed})
		}
		e.active = false
		e.removed = nil
		return true
	case input.PhaseCancel:
		dirty := e.active
		e.Reset(ctx)
		return dirty
	}
	return false
}

// sweep removes the strokes within radius of the segment ab.
func (e *Eraser) sweep(ctx *Context, a, b geom.Point) {
	for _, s := range ctx.Doc.HitTest(a, b, e.radius) {
		idx, err := ctx.Doc.Remove(s.ID())
		if err != nil {
			continue
		}
		e.removed = append(e.removed, history.Removal{Stroke: s, Index: idx})
	}
}

// Reset puts back everything erased by the open gesture.
func (e *Eraser) Reset(ctx *Context) {
	if len(e.removed) > 0 && ctx != nil {
		if err := (history.RemoveStrokes{Removals: e.removed}).Revert(ctx.Doc); err != nil {
			logging.Logger().Warn("restore erased strokes failed", "count", len(e.removed), "error", err)
		}
	}
	e.active = false
	e.removed = nil
}

func (e *Eraser) Render(s surface.Surface) {
	if !e.active {
		return
	}
	r := geom.Rect{X: e.last.X - e.radius, Y: e.last.Y - e.radius, Width: 2 * e.radius, Height: 2 * e.radius}
	s.DrawRect(r, overlayStyle, false)
}
