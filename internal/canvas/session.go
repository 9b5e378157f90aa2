// Package canvas ties the engine together. A Session owns the view
// transform, the document, the history and the pen tools of one canvas and
// is the only thing front ends talk to.
//
// A Session is not safe for concurrent use. Every call is expected to come
// from one event loop in arrival order.
package canvas

import (
	"errors"
	"math"

	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/history"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/pen"
	"github.com/notone/notone-go/internal/surface"
	"github.com/notone/notone-go/internal/tool"
	"github.com/notone/notone-go/internal/typeid"
	"github.com/notone/notone-go/internal/viewport"
)

// ErrInvalidWeight is returned for non-positive or non-finite stroke weights.
var ErrInvalidWeight = errors.New("stroke weight must be positive")

// Session is one canvas.
type Session struct {
	id string

	view    *viewport.Transform
	doc     *document.Document
	history *history.Manager
	ctx     tool.Context

	dispatcher *pen.Dispatcher
	selector   *tool.Selector

	stylusOnly bool
	strict     bool

	// last is the most recent logical point handed to the pen tools.
	last geom.Point
}

// New creates an empty canvas.
func New(opts Options) *Session {
	doc := document.New()
	hist := history.NewManager(doc)
	selector := tool.NewSelector()

	s := &Session{
		id:      typeid.NewSessionID(),
		view:    viewport.New(opts.MinScale, opts.MaxScale),
		doc:     doc,
		history: hist,
		ctx:     tool.Context{Doc: doc, History: hist, Style: opts.Style},
		dispatcher: pen.NewDispatcher(pen.Behaviors{
			Write:  tool.NewWriter(opts.MinPointDistance),
			Erase:  tool.NewEraser(opts.EraserRadius),
			Select: selector,
			Shape:  tool.NewShapeDetector(opts.MinPointDistance, opts.ShapeTolerance),
		}),
		selector:   selector,
		stylusOnly: opts.StylusOnly,
		strict:     opts.Strict,
	}
	s.dispatcher.SetPenType(opts.PenType)
	return s
}

// ID returns the session's typeid.
func (s *Session) ID() string {
	return s.id
}

// --- Input (gesture layer → engine) ---

// HandlePointer routes one pointer event to the pen tools and reports
// whether the view needs a redraw. Multi-touch, and non-stylus input when
// StylusOnly is set, belong to pan and zoom and are dropped here.
func (s *Session) HandlePointer(ev input.PointerEvent) bool {
	if ev.PointerCount > 1 {
		return false
	}
	if s.stylusOnly && ev.ToolType != input.ToolStylus {
		return false
	}

	// The view may have moved since the previous event.
	if err := s.view.Prepare(s.strict); err != nil {
		logging.Logger().Warn("singular view matrix, resetting to identity", "session", s.id, "error", err)
	}
	p, err := s.view.ToLogical(ev.Position)
	if err != nil {
		p = ev.Position
	}
	if !p.IsFinite() {
		// A point off the representable plane never reaches a stroke. Up and
		// cancel still have to close the gesture, so they land on the last
		// good point.
		if ev.Phase == input.PhaseDown || ev.Phase == input.PhaseMove {
			logging.Logger().Debug("dropping non-finite pointer", "session", s.id, "phase", ev.Phase, "screen", ev.Position)
			return false
		}
		p = s.last
	}
	s.last = p
	return s.dispatcher.Handle(&s.ctx, ev.Phase, ev.Buttons, p)
}

// Scale applies one pinch step and reports whether the view changed.
func (s *Session) Scale(ev input.ScaleEvent) bool {
	return s.view.ApplyScale(ev.Focal, ev.Factor) != 1
}

// Pan applies one translation step in screen units. A single stylus never
// pans; it draws.
func (s *Session) Pan(ev input.PanEvent) bool {
	if !ev.IsNavigation() || (ev.DX == 0 && ev.DY == 0) {
		return false
	}
	s.view.Pan(ev.DX, ev.DY)
	return true
}

// --- Commands (UI → engine) ---

// Undo reverts the last history node. An open gesture is abandoned first so
// its pending state never interleaves with the history walk.
func (s *Session) Undo() bool {
	dirty := s.dispatcher.Cancel(&s.ctx)
	return s.history.Undo() || dirty
}

// Redo re-applies the next history node.
func (s *Session) Redo() bool {
	dirty := s.dispatcher.Cancel(&s.ctx)
	return s.history.Redo() || dirty
}

func (s *Session) CanUndo() bool { return s.history.CanUndo() }
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Reset clears the document, the history and every tool, as when a new
// blank page is opened. The view is left where it is.
func (s *Session) Reset() {
	s.dispatcher.Reset(&s.ctx)
	s.doc.Clear()
	s.history.Reset()
	logging.Logger().Info("canvas reset", "session", s.id)
}

// ResetView returns pan and zoom to identity.
func (s *Session) ResetView() {
	s.view.Reset()
}

// SetView restores a saved view matrix. The scale is clamped to the
// configured range; singular or non-finite matrices are rejected.
func (s *Session) SetView(m geom.Matrix) error {
	return s.view.SetMatrix(m)
}

// --- Settings ---

func (s *Session) StrokeWeight() float64       { return s.ctx.Style.Weight }
func (s *Session) StrokeColor() document.Color { return s.ctx.Style.Color }
func (s *Session) Marker() bool                { return s.ctx.Style.Marker }
func (s *Session) Style() document.Style       { return s.ctx.Style }
func (s *Session) PenType() pen.PenType        { return s.dispatcher.PenType() }

func (s *Session) SetStrokeColor(c document.Color) { s.ctx.Style.Color = c }
func (s *Session) SetMarker(on bool)               { s.ctx.Style.Marker = on }

// SetStrokeWeight changes the weight of strokes started from now on.
func (s *Session) SetStrokeWeight(w float64) error {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return ErrInvalidWeight
	}
	s.ctx.Style.Weight = w
	return nil
}

// SetPenType selects the pen. The current gesture, if any, is not affected.
func (s *Session) SetPenType(p pen.PenType) {
	s.dispatcher.SetPenType(p)
}

// --- Queries ---

// Selection returns the IDs picked by the last selector gesture that are
// still in the document.
func (s *Session) Selection() []string {
	var ids []string
	for _, id := range s.selector.Selection() {
		if s.doc.IndexOf(id) >= 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectionBounds returns the union box of Selection.
func (s *Session) SelectionBounds() geom.Rect {
	return s.doc.Bounds(s.Selection())
}

// Strokes returns the committed strokes in draw order.
func (s *Session) Strokes() []*document.Stroke {
	return s.doc.Strokes()
}

// View returns the forward view matrix and the cumulative scale.
func (s *Session) View() (geom.Matrix, float64) {
	return s.view.Matrix(), s.view.Scale()
}

// HistoryLen returns how many nodes are recorded and how many are applied.
func (s *Session) HistoryLen() (total, applied int) {
	return s.history.Len(), s.history.Cursor()
}

// --- Persistence hooks ---

// Snapshot copies the document for an external store.
func (s *Session) Snapshot() document.Snapshot {
	return s.doc.Snapshot()
}

// SnapshotJSON encodes the document as snapshot JSON.
func (s *Session) SnapshotJSON() ([]byte, error) {
	return s.doc.MarshalSnapshot()
}

// Restore replaces the document with snap. History and tool state start
// over, so the restored strokes become the base that undo cannot go below;
// on error nothing changes.
func (s *Session) Restore(snap document.Snapshot) error {
	next := document.New()
	if err := next.Restore(snap); err != nil {
		return err
	}
	s.swap(next)
	return nil
}

// RestoreJSON decodes snapshot JSON and restores it like Restore.
func (s *Session) RestoreJSON(data []byte) error {
	next := document.New()
	if err := next.UnmarshalSnapshot(data); err != nil {
		return err
	}
	s.swap(next)
	return nil
}

// swap installs the strokes of next. Tools are reset first so pending eraser
// reverts land in the old document, not the restored one.
func (s *Session) swap(next *document.Document) {
	s.dispatcher.Reset(&s.ctx)
	s.doc.Clear()
	for _, st := range next.Strokes() {
		_ = s.doc.Append(st)
	}
	s.history.Reset()
}

// --- Rendering ---

// Render draws every committed stroke in order, then the live overlay.
func (s *Session) Render(surf surface.Surface) {
	surf.SetTransform(s.view.Matrix())
	for _, st := range s.doc.Strokes() {
		surf.DrawPolyline(st.Points(), st.Style(), st.Closed())
	}
	s.dispatcher.Render(surf)
}

// RenderJSON renders into a draw-command list.
func (s *Session) RenderJSON() (string, error) {
	rec := surface.NewRecorder()
	s.Render(rec)
	return rec.ToJSON()
}
