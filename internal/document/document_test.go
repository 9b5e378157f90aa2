package document

import (
	"errors"
	"math"
	"testing"

	"github.com/notone/notone-go/internal/geom"
)

var testStyle = Style{Color: ColorBlack, Weight: 2}

func line(x0, y0, x1, y1 float64) *Stroke {
	s := NewStroke(testStyle, geom.Pt(x0, y0))
	_ = s.Append(geom.Pt(x1, y1))
	s.Freeze()
	return s
}

func ids(strokes []*Stroke) []string {
	out := make([]string, len(strokes))
	for i, s := range strokes {
		out[i] = s.ID()
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStrokeAppendAndFreeze(t *testing.T) {
	s := NewStroke(testStyle, geom.Pt(1, 1))
	if err := s.Append(geom.Pt(2, 2)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	s.Freeze()
	if err := s.Append(geom.Pt(3, 3)); !errors.Is(err, ErrFrozen) {
		t.Errorf("Append() after Freeze error = %v, want ErrFrozen", err)
	}
	if s.Len() != 2 || s.Last() != geom.Pt(2, 2) {
		t.Errorf("points = %v", s.Points())
	}

	pts := s.Points()
	pts[0] = geom.Pt(99, 99)
	if s.At(0) != geom.Pt(1, 1) {
		t.Error("Points() must return a copy")
	}
}

func TestDocumentInsertRemoveKeepsOrder(t *testing.T) {
	d := New()
	a, b, c := line(0, 0, 1, 1), line(2, 2, 3, 3), line(4, 4, 5, 5)
	for _, s := range []*Stroke{a, b, c} {
		if err := d.Append(s); err != nil {
			t.Fatal(err)
		}
	}

	idx, err := d.Remove(b.ID())
	if err != nil || idx != 1 {
		t.Fatalf("Remove() = (%d, %v), want (1, nil)", idx, err)
	}
	if got := ids(d.Strokes()); !equalIDs(got, []string{a.ID(), c.ID()}) {
		t.Errorf("after remove = %v", got)
	}

	if err := d.Insert(1, b); err != nil {
		t.Fatal(err)
	}
	if got := ids(d.Strokes()); !equalIDs(got, []string{a.ID(), b.ID(), c.ID()}) {
		t.Errorf("after reinsert = %v", got)
	}
}

func TestDocumentRejects(t *testing.T) {
	d := New()
	a := line(0, 0, 1, 1)
	_ = d.Append(a)

	if err := d.Append(a); !errors.Is(err, ErrDuplicateStroke) {
		t.Errorf("duplicate Append() error = %v", err)
	}
	if err := d.Insert(5, line(0, 0, 1, 1)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Insert() out of range error = %v", err)
	}
	if _, err := d.Remove("stroke_missing"); !errors.Is(err, ErrStrokeNotFound) {
		t.Errorf("Remove() missing error = %v", err)
	}
}

func TestDocumentHitTestAndIntersecting(t *testing.T) {
	d := New()
	h := line(0, 0, 100, 0)
	v := line(50, 50, 50, 150)
	_ = d.Append(h)
	_ = d.Append(v)

	hits := d.HitTest(geom.Pt(20, 5), geom.Pt(20, 5), 5)
	if got := ids(hits); !equalIDs(got, []string{h.ID()}) {
		t.Errorf("HitTest() = %v, want [%s]", got, h.ID())
	}

	if hits := d.HitTest(geom.Pt(20, 30), geom.Pt(20, 30), 5); len(hits) != 0 {
		t.Errorf("HitTest() far away = %v", ids(hits))
	}

	sel := d.Intersecting(geom.Rect{X: 40, Y: -10, Width: 20, Height: 80})
	if got := ids(sel); !equalIDs(got, []string{h.ID(), v.ID()}) {
		t.Errorf("Intersecting() = %v", got)
	}

	b := d.Bounds([]string{h.ID(), v.ID(), "stroke_unknown"})
	want := geom.Rect{X: -1, Y: -1, Width: 102, Height: 152}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	d := New()
	s := NewStroke(Style{Color: 0x80123456, Weight: 3.25, Marker: true}, geom.Pt(0.1, 0.2))
	_ = s.Append(geom.Pt(1.0/3, 2.0/3))
	s.Freeze()
	_ = d.Append(s)
	_ = d.Append(NewShapeStroke(testStyle, KindRectangle, []geom.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}))

	data, err := d.MarshalSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored := New()
	if err := restored.UnmarshalSnapshot(data); err != nil {
		t.Fatalf("UnmarshalSnapshot() error = %v", err)
	}

	if restored.Len() != d.Len() {
		t.Fatalf("Len() = %d, want %d", restored.Len(), d.Len())
	}
	for i := 0; i < d.Len(); i++ {
		want, got := d.At(i), restored.At(i)
		if got.ID() != want.ID() || got.Style() != want.Style() || got.Kind() != want.Kind() {
			t.Errorf("stroke %d = %s %+v %s, want %s %+v %s", i,
				got.ID(), got.Style(), got.Kind(), want.ID(), want.Style(), want.Kind())
		}
		wp, gp := want.Points(), got.Points()
		if len(wp) != len(gp) {
			t.Fatalf("stroke %d has %d points, want %d", i, len(gp), len(wp))
		}
		for j := range wp {
			if wp[j] != gp[j] {
				t.Errorf("stroke %d point %d = %v, want %v", i, j, gp[j], wp[j])
			}
		}
		if !got.Frozen() {
			t.Errorf("restored stroke %d is not frozen", i)
		}
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	d := New()
	_ = d.Append(line(0, 0, 1, 1))

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"wrong version", Snapshot{Version: 99}},
		{"bad id", Snapshot{Version: SnapshotVersion, Strokes: []StrokeData{{ID: "nope", Points: []geom.Point{{}}}}}},
		{"no points", Snapshot{Version: SnapshotVersion, Strokes: []StrokeData{{ID: line(0, 0, 1, 1).ID()}}}},
		{"nan point", Snapshot{Version: SnapshotVersion, Strokes: []StrokeData{{ID: line(0, 0, 1, 1).ID(), Points: []geom.Point{{X: 1}, {X: math.NaN()}}}}}},
		{"inf point", Snapshot{Version: SnapshotVersion, Strokes: []StrokeData{{ID: line(0, 0, 1, 1).ID(), Points: []geom.Point{{Y: math.Inf(1)}}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Restore(tt.snap); err == nil {
				t.Error("Restore() should fail")
			}
			if d.Len() != 1 {
				t.Errorf("document changed on failed restore: Len() = %d", d.Len())
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF0000", ColorRed, false},
		{"0000ff", ColorBlue, false},
		{"#80FFFFFF", 0x80FFFFFF, false},
		{"#F00", 0, true},
		{"#GGGGGG", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if ColorRed.Hex() != "#FF0000" {
		t.Errorf("Hex() = %q", ColorRed.Hex())
	}
}
