package tool

import (
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/history"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/surface"
)

// ShapeDetector captures a freehand stroke and, on release, replaces it with
// a clean line, rectangle or ellipse when the stroke fits one. Strokes that
// fit nothing are committed as drawn.
type ShapeDetector struct {
	capture
	tolerance float64
}

func NewShapeDetector(minDistance, tolerance float64) *ShapeDetector {
	if tolerance <= 0 {
		tolerance = DefaultShapeTolerance
	}
	return &ShapeDetector{capture: capture{minDistance: minDistance}, tolerance: tolerance}
}

func (d *ShapeDetector) HandleTouch(ctx *Context, phase input.Phase, p geom.Point) bool {
	dirty, done := d.handle(ctx, phase, p)
	if !done {
		return dirty
	}

	raw := d.finish()
	shape, ok := Classify(raw.Points(), d.tolerance)
	if !ok {
		commitStroke(ctx, raw)
		return true
	}

	logging.Logger().Debug("shape recognized", "kind", shape.Kind, "error", shape.Error, "points", raw.Len())
	// The raw stroke only ever lived in the overlay and was never added to
	// the document, so its removal is already implied and the batch holds
	// just the replacement. Replay therefore never sees the raw ink.
	s := document.NewShapeStroke(raw.Style(), shape.Kind, shape.Points)
	batch := history.Batch{Label: "shape", Mutations: []history.Mutation{history.Append(ctx.Doc, s)}}
	if err := ctx.History.Do(batch); err != nil {
		logging.Logger().Warn("commit shape failed", "stroke", s.ID(), "error", err)
	}
	return true
}

func (d *ShapeDetector) Reset(*Context) {
	d.drop()
}

func (d *ShapeDetector) Render(s surface.Surface) {
	d.render(s)
}
