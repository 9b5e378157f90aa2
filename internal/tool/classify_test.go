package tool

import (
	"math"
	"testing"

	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/input"
)

// jitter returns a small deterministic wobble in [-1, 1].
func jitter(i int) float64 {
	return float64(i%3 - 1)
}

func rectPath(x, y, w, h, step float64) []geom.Point {
	corners := []geom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}, {X: x, Y: y}}
	var pts []geom.Point
	i := 0
	for c := 1; c < len(corners); c++ {
		a, b := corners[c-1], corners[c]
		n := int(a.Distance(b) / step)
		for k := 0; k < n; k++ {
			p := a.Lerp(b, float64(k)/float64(n))
			pts = append(pts, geom.Pt(p.X+jitter(i), p.Y-jitter(i)))
			i++
		}
	}
	return append(pts, corners[0])
}

func circlePath(cx, cy, r float64, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, geom.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return pts
}

func linePath(a, b geom.Point, n int) []geom.Point {
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		p := a.Lerp(b, float64(i)/float64(n))
		pts = append(pts, geom.Pt(p.X+jitter(i)*0.5, p.Y-jitter(i)*0.5))
	}
	return pts
}

func zigzag() []geom.Point {
	var pts []geom.Point
	for i := 0; i <= 10; i++ {
		y := 0.0
		if i%2 == 1 {
			y = 40
		}
		pts = append(pts, geom.Pt(float64(i*10), y))
	}
	return pts
}

func TestClassify(t *testing.T) {
	semicircle := circlePath(50, 0, 50, 64)[:33]
	triangle := append(append(linePath(geom.Pt(0, 0), geom.Pt(100, 0), 20),
		linePath(geom.Pt(100, 0), geom.Pt(50, 80), 20)...),
		linePath(geom.Pt(50, 80), geom.Pt(0, 0), 20)...)

	tests := []struct {
		name     string
		pts      []geom.Point
		wantKind document.Kind
		wantOK   bool
		wantN    int
	}{
		{"rectangle", rectPath(0, 0, 100, 60, 5), document.KindRectangle, true, 4},
		{"circle", circlePath(50, 50, 40, 64), document.KindEllipse, true, ellipseSegments},
		{"line", linePath(geom.Pt(0, 0), geom.Pt(100, 50), 20), document.KindLine, true, 2},
		{"semicircle", semicircle, "", false, 0},
		{"zigzag", zigzag(), "", false, 0},
		{"triangle", triangle, "", false, 0},
		{"too small", circlePath(0, 0, 3, 32), "", false, 0},
		{"single point", []geom.Point{{X: 1, Y: 1}}, "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.pts, DefaultShapeTolerance)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v (kind %q, error %.3f), want %v", ok, got.Kind, got.Error, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if len(got.Points) != tt.wantN {
				t.Errorf("len(Points) = %d, want %d", len(got.Points), tt.wantN)
			}
			if got.Error > DefaultShapeTolerance {
				t.Errorf("Error = %v above tolerance", got.Error)
			}
		})
	}
}

func TestClassifyLineKeepsEndpoints(t *testing.T) {
	pts := linePath(geom.Pt(3, 4), geom.Pt(90, 70), 30)
	got, ok := Classify(pts, 0)
	if !ok || got.Kind != document.KindLine {
		t.Fatalf("Classify() = %+v, %v", got, ok)
	}
	if got.Points[0] != pts[0] || got.Points[1] != pts[len(pts)-1] {
		t.Errorf("Points = %v, want first and last input points", got.Points)
	}
}

func drawPath(ctx *Context, b Behavior, pts []geom.Point) {
	b.HandleTouch(ctx, input.PhaseDown, pts[0])
	for _, p := range pts[1:] {
		b.HandleTouch(ctx, input.PhaseMove, p)
	}
	b.HandleTouch(ctx, input.PhaseUp, pts[len(pts)-1])
}

func TestShapeDetectorReplacesRecognizedStroke(t *testing.T) {
	ctx := newContext()
	d := NewShapeDetector(0, DefaultShapeTolerance)
	drawPath(ctx, d, rectPath(10, 10, 100, 60, 5))

	if ctx.Doc.Len() != 1 || ctx.History.Len() != 1 {
		t.Fatalf("doc = %d, history = %d, want 1, 1", ctx.Doc.Len(), ctx.History.Len())
	}
	s := ctx.Doc.At(0)
	if s.Kind() != document.KindRectangle || !s.Closed() || s.Len() != 4 || !s.Frozen() {
		t.Errorf("shape stroke = kind %q, closed %v, %d points", s.Kind(), s.Closed(), s.Len())
	}
	if s.Style() != penStyle {
		t.Errorf("Style() = %+v, want %+v", s.Style(), penStyle)
	}

	if !ctx.History.Undo() || ctx.Doc.Len() != 0 {
		t.Errorf("undo left %d strokes", ctx.Doc.Len())
	}
	if !ctx.History.Redo() || ctx.Doc.Len() != 1 || ctx.Doc.At(0).ID() != s.ID() {
		t.Error("redo did not restore the shape")
	}
}

func TestShapeDetectorFallsBackToRawStroke(t *testing.T) {
	ctx := newContext()
	d := NewShapeDetector(0, DefaultShapeTolerance)
	pts := zigzag()
	drawPath(ctx, d, pts)

	if ctx.Doc.Len() != 1 {
		t.Fatalf("doc = %d, want 1", ctx.Doc.Len())
	}
	s := ctx.Doc.At(0)
	if s.Kind() != document.KindFreehand || s.Len() != len(pts) {
		t.Errorf("raw stroke = kind %q with %d points, want freehand with %d", s.Kind(), s.Len(), len(pts))
	}
}
