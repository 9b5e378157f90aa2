// Package document holds the committed vector content of a canvas: strokes
// in draw order.
package document

import (
	"errors"
	"fmt"

	"github.com/notone/notone-go/internal/geom"
)

var (
	ErrDuplicateStroke = errors.New("stroke already in document")
	ErrStrokeNotFound  = errors.New("stroke not found")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Document is the ordered stroke collection. Index order is draw order.
// A stroke appears at most once, compared by identity.
type Document struct {
	strokes []*Stroke
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Len returns the number of strokes.
func (d *Document) Len() int {
	return len(d.strokes)
}

// At returns the stroke at index i.
func (d *Document) At(i int) *Stroke {
	return d.strokes[i]
}

// Strokes returns the strokes in draw order. The slice is a copy; the
// strokes are shared.
func (d *Document) Strokes() []*Stroke {
	return append([]*Stroke(nil), d.strokes...)
}

// IndexOf returns the position of the stroke with the given ID, or -1.
func (d *Document) IndexOf(id string) int {
	for i, s := range d.strokes {
		if s.id == id {
			return i
		}
	}
	return -1
}

// Append adds a stroke on top of everything else.
func (d *Document) Append(s *Stroke) error {
	return d.Insert(len(d.strokes), s)
}

// Insert places s at index i, shifting later strokes up.
func (d *Document) Insert(i int, s *Stroke) error {
	if s == nil {
		return fmt.Errorf("insert at %d: nil stroke", i)
	}
	if i < 0 || i > len(d.strokes) {
		return fmt.Errorf("insert %s at %d of %d: %w", s.id, i, len(d.strokes), ErrIndexOutOfRange)
	}
	if d.IndexOf(s.id) >= 0 {
		return fmt.Errorf("insert %s: %w", s.id, ErrDuplicateStroke)
	}

	d.strokes = append(d.strokes, nil)
	copy(d.strokes[i+1:], d.strokes[i:])
	d.strokes[i] = s
	return nil
}

// Remove deletes the stroke with the given ID and returns the index it had.
// The relative order of the remaining strokes is kept.
func (d *Document) Remove(id string) (int, error) {
	i := d.IndexOf(id)
	if i < 0 {
		return -1, fmt.Errorf("remove %s: %w", id, ErrStrokeNotFound)
	}
	d.strokes = append(d.strokes[:i], d.strokes[i+1:]...)
	return i, nil
}

// Clear removes every stroke.
func (d *Document) Clear() {
	d.strokes = nil
}

// HitTest returns, in draw order, the strokes whose paint lies within
// radius of the segment ab.
func (d *Document) HitTest(a, b geom.Point, radius float64) []*Stroke {
	var hits []*Stroke
	for _, s := range d.strokes {
		if s.DistanceTo(a, b) <= radius {
			hits = append(hits, s)
		}
	}
	return hits
}

// Intersecting returns, in draw order, the strokes that cross r.
func (d *Document) Intersecting(r geom.Rect) []*Stroke {
	var hits []*Stroke
	for _, s := range d.strokes {
		if s.Intersects(r) {
			hits = append(hits, s)
		}
	}
	return hits
}

// Bounds returns the combined bounding box of the given stroke IDs.
// Unknown IDs are skipped.
func (d *Document) Bounds(ids []string) geom.Rect {
	var result geom.Rect
	first := true
	for _, id := range ids {
		i := d.IndexOf(id)
		if i < 0 {
			continue
		}
		b := d.strokes[i].Bounds()
		if first {
			result = b
			first = false
		} else {
			result = result.Union(b)
		}
	}
	return result
}
