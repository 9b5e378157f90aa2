package tool

import (
	"math"

	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
)

// Shape recognition thresholds.
const (
	// DefaultShapeTolerance is the largest normalised mean error accepted.
	DefaultShapeTolerance = 0.08

	// minShapeSize is the smallest bounding-box diagonal worth recognising.
	minShapeSize = 10.0

	// closeGapRatio is the largest start/end gap, relative to the diagonal,
	// for a path to count as closed.
	closeGapRatio = 0.25

	// edgeCoverage is how near, relative to the short side, a point must be
	// to a rectangle edge to count as touching it.
	edgeCoverage = 0.15

	// ellipseSegments is the number of vertices of a synthesised ellipse.
	ellipseSegments = 48
)

// Shape is a recognised primitive.
type Shape struct {
	Kind   document.Kind
	Points []geom.Point
	// Error is the normalised mean deviation of the input from the shape.
	Error float64
}

// Classify fits pts against a line, an axis-aligned rectangle and an
// axis-aligned ellipse. It returns the best fit whose error is within
// tolerance. Open paths can only be lines; closed paths can only be
// rectangles or ellipses.
func Classify(pts []geom.Point, tolerance float64) (Shape, bool) {
	if len(pts) < 2 {
		return Shape{}, false
	}
	if tolerance <= 0 {
		tolerance = DefaultShapeTolerance
	}

	box := geom.BoundsOf(pts)
	diag := math.Hypot(box.Width, box.Height)
	if diag < minShapeSize {
		return Shape{}, false
	}

	first, last := pts[0], pts[len(pts)-1]
	gap := first.Distance(last)

	if gap > closeGapRatio*diag {
		errLine := lineError(pts, first, last)
		if errLine <= tolerance {
			return Shape{Kind: document.KindLine, Points: []geom.Point{first, last}, Error: errLine}, true
		}
		return Shape{}, false
	}

	if len(pts) < 5 || math.Min(box.Width, box.Height) < minShapeSize/2 {
		return Shape{}, false
	}

	errRect, okRect := rectError(pts, box)
	errEllipse, okEllipse := ellipseError(pts, box)

	switch {
	case okRect && errRect <= tolerance && (!okEllipse || errRect <= errEllipse):
		c := box.Corners()
		return Shape{Kind: document.KindRectangle, Points: c[:], Error: errRect}, true
	case okEllipse && errEllipse <= tolerance:
		return Shape{Kind: document.KindEllipse, Points: ellipsePoints(box, ellipseSegments), Error: errEllipse}, true
	}
	return Shape{}, false
}

// lineError is the largest distance from the chord, relative to its length.
func lineError(pts []geom.Point, a, b geom.Point) float64 {
	chord := a.Distance(b)
	if chord == 0 {
		return math.Inf(1)
	}
	var worst float64
	for _, p := range pts {
		worst = math.Max(worst, geom.DistanceToSegment(p, a, b))
	}
	return worst / chord
}

// rectError is the mean distance of each point to the nearest edge of box,
// relative to half the short side. Every edge must be visited.
func rectError(pts []geom.Point, box geom.Rect) (float64, bool) {
	half := math.Min(box.Width, box.Height) / 2
	near := edgeCoverage * 2 * half
	minX, minY := box.X, box.Y
	maxX, maxY := box.X+box.Width, box.Y+box.Height

	var covered [4]bool
	var sum float64
	for _, p := range pts {
		d := [4]float64{p.Y - minY, maxX - p.X, maxY - p.Y, p.X - minX}
		best := 0
		for i := 1; i < 4; i++ {
			if d[i] < d[best] {
				best = i
			}
		}
		if d[best] <= near {
			covered[best] = true
		}
		sum += d[best]
	}
	for _, c := range covered {
		if !c {
			return 0, false
		}
	}
	return sum / float64(len(pts)) / half, true
}

// ellipseError is the mean |r-1| of each point in the unit-circle space of
// the ellipse inscribed in box. Every quadrant must be visited.
func ellipseError(pts []geom.Point, box geom.Rect) (float64, bool) {
	c := box.Center()
	rx, ry := box.Width/2, box.Height/2

	var quadrants [4]bool
	var sum float64
	for _, p := range pts {
		x, y := (p.X-c.X)/rx, (p.Y-c.Y)/ry
		r := math.Hypot(x, y)
		sum += math.Abs(r - 1)
		if r > 0.5 {
			q := 0
			if x < 0 {
				q |= 1
			}
			if y < 0 {
				q |= 2
			}
			quadrants[q] = true
		}
	}
	for _, q := range quadrants {
		if !q {
			return 0, false
		}
	}
	return sum / float64(len(pts)), true
}

func ellipsePoints(box geom.Rect, n int) []geom.Point {
	c := box.Center()
	rx, ry := box.Width/2, box.Height/2
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
	}
	return pts
}
