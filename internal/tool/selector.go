package tool

import (
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/surface"
)

// Selector drags a rubber-band rectangle and, on release, selects every
// stroke crossing it. Selection is view state and is never historied.
type Selector struct {
	active          bool
	origin, current geom.Point

	selection []string
	bounds    geom.Rect
}

func NewSelector() *Selector {
	return &Selector{}
}

func (s *Selector) HandleTouch(ctx *Context, phase input.Phase, p geom.Point) bool {
	switch phase {
	case input.PhaseDown:
		s.active = true
		s.origin, s.current = p, p
		s.selection = nil
		s.bounds = geom.Rect{}
		return true
	case input.PhaseMove:
		if !s.active {
			return s.HandleTouch(ctx, input.PhaseDown, p)
		}
		s.current = p
		return true
	case input.PhaseUp:
		if !s.active {
			return false
		}
		s.current = p
		s.active = false
		for _, st := range ctx.Doc.Intersecting(s.Region()) {
			s.selection = append(s.selection, st.ID())
		}
		s.bounds = ctx.Doc.Bounds(s.selection)
		return true
	case input.PhaseCancel:
		dirty := s.active
		s.active = false
		return dirty
	}
	return false
}

// Region returns the rubber-band rectangle of the current or last gesture.
func (s *Selector) Region() geom.Rect {
	return geom.RectFromPoints(s.origin, s.current)
}

// Selection returns the IDs chosen by the last completed gesture in draw
// order.
func (s *Selector) Selection() []string {
	return append([]string(nil), s.selection...)
}

// SelectionBounds returns the union box of the selection as it was when
// the gesture ended.
func (s *Selector) SelectionBounds() geom.Rect {
	return s.bounds
}

// ClearSelection drops the selection without touching an open gesture.
func (s *Selector) ClearSelection() {
	s.selection = nil
	s.bounds = geom.Rect{}
}

func (s *Selector) Reset(*Context) {
	s.active = false
	s.ClearSelection()
}

func (s *Selector) Render(surf surface.Surface) {
	switch {
	case s.active:
		surf.DrawRect(s.Region(), overlayStyle, true)
	case len(s.selection) > 0:
		surf.DrawRect(s.bounds, overlayStyle, true)
	}
}
