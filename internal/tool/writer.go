package tool

import (
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/history"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/surface"
)

// capture collects the points of one freehand gesture. It is shared by
// Writer and ShapeDetector.
type capture struct {
	minDistance float64

	stroke *document.Stroke
	// pending is the newest point dropped by decimation. It is appended on
	// finish so the stroke always ends where the pen did.
	pending    geom.Point
	hasPending bool
}

func (c *capture) begin(style document.Style, p geom.Point) {
	c.stroke = document.NewStroke(style, p)
	c.hasPending = false
}

func (c *capture) add(p geom.Point) {
	if c.minDistance > 0 && c.stroke.Last().Distance(p) < c.minDistance {
		c.pending = p
		c.hasPending = true
		return
	}
	_ = c.stroke.Append(p)
	c.hasPending = false
}

// finish freezes and hands over the captured stroke.
func (c *capture) finish() *document.Stroke {
	s := c.stroke
	if c.hasPending {
		_ = s.Append(c.pending)
	}
	s.Freeze()
	c.stroke = nil
	c.hasPending = false
	return s
}

func (c *capture) drop() {
	c.stroke = nil
	c.hasPending = false
}

func (c *capture) active() bool {
	return c.stroke != nil
}

func (c *capture) render(s surface.Surface) {
	if c.stroke == nil {
		return
	}
	pts := c.stroke.Points()
	if c.hasPending {
		pts = append(pts, c.pending)
	}
	s.DrawPolyline(pts, c.stroke.Style(), false)
}

// handle runs the common down/move/cancel flow and reports whether the
// phase was up with a stroke ready to commit.
func (c *capture) handle(ctx *Context, phase input.Phase, p geom.Point) (dirty, done bool) {
	switch phase {
	case input.PhaseDown:
		c.begin(ctx.Style, p)
		return true, false
	case input.PhaseMove:
		if !c.active() {
			c.begin(ctx.Style, p)
			return true, false
		}
		c.add(p)
		return true, false
	case input.PhaseUp:
		return c.active(), c.active()
	case input.PhaseCancel:
		dirty = c.active()
		c.drop()
		return dirty, false
	}
	return false, false
}

// Writer draws freehand strokes.
type Writer struct {
	capture
}

// NewWriter returns a Writer that skips move points closer than
// minDistance to the previous kept point. Zero keeps every point.
func NewWriter(minDistance float64) *Writer {
	return &Writer{capture: capture{minDistance: minDistance}}
}

func (w *Writer) HandleTouch(ctx *Context, phase input.Phase, p geom.Point) bool {
	dirty, done := w.handle(ctx, phase, p)
	if done {
		commitStroke(ctx, w.finish())
	}
	return dirty
}

func (w *Writer) Reset(*Context) {
	w.drop()
}

func (w *Writer) Render(s surface.Surface) {
	w.render(s)
}

func commitStroke(ctx *Context, s *document.Stroke) {
	if err := ctx.History.Do(history.Append(ctx.Doc, s)); err != nil {
		logging.Logger().Warn("commit stroke failed", "stroke", s.ID(), "error", err)
	}
}
