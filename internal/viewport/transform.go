// Package viewport maps between screen space and logical canvas space and
// owns the pan/zoom state of a canvas.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/notone/notone-go/internal/geom"
)

// Default scale bounds.
const (
	DefaultMinScale = 0.01
	DefaultMaxScale = 5.0
)

// ErrNonFinite is returned for a view matrix with NaN or infinite entries.
var ErrNonFinite = errors.New("non-finite view matrix")

// Transform is the forward view matrix (logical → screen) together with a
// cached inverse. Any mutation of the forward matrix drops the cached inverse;
// it is rebuilt lazily by ToLogical or eagerly by Refresh.
type Transform struct {
	matrix  geom.Matrix
	inverse geom.Matrix
	valid   bool

	scale    float64
	minScale float64
	maxScale float64
}

// New creates an identity transform whose cumulative scale is clamped to
// [minScale, maxScale]. Invalid bounds fall back to the defaults.
func New(minScale, maxScale float64) *Transform {
	if minScale <= 0 || maxScale < minScale {
		minScale, maxScale = DefaultMinScale, DefaultMaxScale
	}
	t := &Transform{minScale: minScale, maxScale: maxScale}
	t.Reset()
	return t
}

// Reset returns the transform to identity at scale 1.
func (t *Transform) Reset() {
	t.matrix = geom.Identity()
	t.inverse = geom.Identity()
	t.valid = true
	t.scale = 1
}

// Matrix returns the forward (logical → screen) matrix.
func (t *Transform) Matrix() geom.Matrix {
	return t.matrix
}

// Scale returns the cumulative zoom factor.
func (t *Transform) Scale() float64 {
	return t.scale
}

// SetMatrix replaces the forward matrix, e.g. to restore a saved view. The
// cumulative scale is recovered from the determinant; outside [min, max] the
// linear part is rescaled so the scale lands on the boundary. Singular or
// non-finite matrices are rejected and the view is left unchanged.
func (t *Transform) SetMatrix(m geom.Matrix) error {
	if !m.IsFinite() {
		return fmt.Errorf("set view matrix %v: %w", m, ErrNonFinite)
	}
	if _, err := m.Invert(); err != nil {
		return fmt.Errorf("set view matrix %v: %w", m, err)
	}

	scale := math.Sqrt(math.Abs(m.Determinant()))
	if clamped := math.Min(math.Max(scale, t.minScale), t.maxScale); clamped != scale {
		k := clamped / scale
		m[0], m[1], m[2], m[3] = m[0]*k, m[1]*k, m[2]*k, m[3]*k
		scale = clamped
	}

	t.matrix = m
	t.scale = scale
	t.valid = false
	return nil
}

// Pan moves the view by (dx, dy) screen units.
func (t *Transform) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	next := t.matrix.PostTranslate(dx, dy)
	if !next.IsFinite() {
		return
	}
	t.matrix = next
	t.valid = false
}

// ApplyScale zooms by factor around the screen-space focal point and returns
// the factor that was actually applied. When the cumulative scale would leave
// [min, max], the applied factor becomes boundary/current so the result lands
// exactly on the boundary. Non-positive or non-finite factors are ignored.
func (t *Transform) ApplyScale(focal geom.Point, factor float64) float64 {
	if factor <= 0 || !finite(factor) || !finite(focal.X) || !finite(focal.Y) || t.scale <= 0 {
		return 1
	}

	next := t.scale * factor
	switch {
	case next > t.maxScale:
		factor = t.maxScale / t.scale
		t.scale = t.maxScale
	case next < t.minScale:
		factor = t.minScale / t.scale
		t.scale = t.minScale
	default:
		t.scale = next
	}

	t.matrix = t.matrix.
		PostTranslate(-focal.X, -focal.Y).
		PostScale(factor, factor).
		PostTranslate(focal.X, focal.Y)
	t.valid = false
	return factor
}

// Refresh re-derives the inverse from the current forward matrix,
// regardless of whether the cache looks valid.
func (t *Transform) Refresh() error {
	inv, err := t.matrix.Invert()
	if err != nil {
		t.valid = false
		return fmt.Errorf("invert view matrix %v: %w", t.matrix, err)
	}
	t.inverse = inv
	t.valid = true
	return nil
}

// Prepare re-derives the inverse ahead of an input event. A singular matrix
// panics when strict; otherwise the view falls back to identity and the
// inversion error is returned for the caller to report.
func (t *Transform) Prepare(strict bool) error {
	err := t.Refresh()
	if err == nil {
		return nil
	}
	if strict {
		panic(err)
	}
	t.Reset()
	return err
}

// ToLogical maps a screen point into logical canvas space.
func (t *Transform) ToLogical(screen geom.Point) (geom.Point, error) {
	if !t.valid {
		if err := t.Refresh(); err != nil {
			return screen, err
		}
	}
	return t.inverse.TransformPoint(screen), nil
}

// ToScreen maps a logical point into screen space.
func (t *Transform) ToScreen(logical geom.Point) geom.Point {
	return t.matrix.TransformPoint(logical)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
