package geom

import "math"

// DistanceToSegment returns the distance from p to the segment ab.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(a.Lerp(b, t))
}

// SegmentsIntersect reports whether segments p1p2 and q1q2 share a point.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear and touching cases.
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

// SegmentDistance returns the shortest distance between segments p1p2 and q1q2.
func SegmentDistance(p1, p2, q1, q2 Point) float64 {
	if SegmentsIntersect(p1, p2, q1, q2) {
		return 0
	}
	return math.Min(
		math.Min(DistanceToSegment(p1, q1, q2), DistanceToSegment(p2, q1, q2)),
		math.Min(DistanceToSegment(q1, p1, p2), DistanceToSegment(q2, p1, p2)),
	)
}

// PolylineDistance returns the shortest distance between the segment ab and
// the polyline pts. A one-point polyline is treated as a dot; an empty one is
// infinitely far away. When closed is set the last point connects back to
// the first.
func PolylineDistance(a, b Point, pts []Point, closed bool) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return DistanceToSegment(pts[0], a, b)
	}

	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, SegmentDistance(a, b, pts[i-1], pts[i]))
		if best == 0 {
			return 0
		}
	}
	if closed {
		best = math.Min(best, SegmentDistance(a, b, pts[len(pts)-1], pts[0]))
	}
	return best
}

// PolylineIntersectsRect reports whether any part of the polyline lies
// inside r or crosses its border.
func PolylineIntersectsRect(pts []Point, closed bool, r Rect) bool {
	if len(pts) == 0 {
		return false
	}
	if !r.Intersects(BoundsOf(pts)) {
		return false
	}
	for _, p := range pts {
		if r.Contains(p) {
			return true
		}
	}

	c := r.Corners()
	edges := [4][2]Point{{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]}}
	crosses := func(a, b Point) bool {
		for _, e := range edges {
			if SegmentsIntersect(a, b, e[0], e[1]) {
				return true
			}
		}
		return false
	}
	for i := 1; i < len(pts); i++ {
		if crosses(pts[i-1], pts[i]) {
			return true
		}
	}
	return closed && len(pts) > 2 && crosses(pts[len(pts)-1], pts[0])
}

// orient returns the signed area of the triangle abc: positive for a
// counter-clockwise turn, negative for clockwise, zero when collinear.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}
