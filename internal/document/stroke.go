package document

import (
	"errors"

	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/typeid"
)

// ErrFrozen is returned when appending to a finalized stroke.
var ErrFrozen = errors.New("stroke is frozen")

// Stroke is an append-only path of logical points with a fixed style.
// Points never change once appended; after Freeze no more can be added.
type Stroke struct {
	id     string
	style  Style
	kind   Kind
	points []geom.Point
	frozen bool
}

// NewStroke starts a freehand stroke at start.
func NewStroke(style Style, start geom.Point) *Stroke {
	return &Stroke{
		id:     typeid.NewStrokeID(),
		style:  style,
		kind:   KindFreehand,
		points: []geom.Point{start},
	}
}

// NewShapeStroke builds an already frozen stroke from a synthesized outline.
func NewShapeStroke(style Style, kind Kind, pts []geom.Point) *Stroke {
	return &Stroke{
		id:     typeid.NewStrokeID(),
		style:  style,
		kind:   kind,
		points: append([]geom.Point(nil), pts...),
		frozen: true,
	}
}

func (s *Stroke) ID() string   { return s.id }
func (s *Stroke) Style() Style { return s.style }
func (s *Stroke) Kind() Kind   { return s.kind }
func (s *Stroke) Frozen() bool { return s.frozen }
func (s *Stroke) Len() int     { return len(s.points) }
func (s *Stroke) Closed() bool { return s.kind.Closed() }
func (s *Stroke) Freeze()      { s.frozen = true }

// At returns the i-th point.
func (s *Stroke) At(i int) geom.Point {
	return s.points[i]
}

// Last returns the most recently appended point.
func (s *Stroke) Last() geom.Point {
	return s.points[len(s.points)-1]
}

// Points returns a copy of the point sequence.
func (s *Stroke) Points() []geom.Point {
	return append([]geom.Point(nil), s.points...)
}

// Append adds p to the end of the path.
func (s *Stroke) Append(p geom.Point) error {
	if s.frozen {
		return ErrFrozen
	}
	s.points = append(s.points, p)
	return nil
}

// Bounds returns the bounding box of the path, grown by half the stroke
// weight so it covers the painted area.
func (s *Stroke) Bounds() geom.Rect {
	return geom.BoundsOf(s.points).Expand(s.style.Weight / 2)
}

// DistanceTo returns the gap between the segment ab and the painted edge of
// the stroke. Zero or negative means the segment touches paint.
func (s *Stroke) DistanceTo(a, b geom.Point) float64 {
	return geom.PolylineDistance(a, b, s.points, s.Closed()) - s.style.Weight/2
}

// Intersects reports whether any part of the path lies in r.
func (s *Stroke) Intersects(r geom.Rect) bool {
	return geom.PolylineIntersectsRect(s.points, s.Closed(), r)
}
