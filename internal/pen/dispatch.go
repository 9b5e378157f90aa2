package pen

import (
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/surface"
	"github.com/notone/notone-go/internal/tool"
)

// Behaviors holds one tool per mode.
type Behaviors struct {
	Write  tool.Behavior
	Erase  tool.Behavior
	Select tool.Behavior
	Shape  tool.Behavior
}

// Dispatcher resolves the mode of every event but hands all phases of a
// gesture to the behavior that received its down. Releasing the side button
// halfway through a stroke therefore does not split it between two tools.
type Dispatcher struct {
	behaviors [modeCount]tool.Behavior
	pen       PenType

	owner  Mode
	active bool
	// last is the most recently resolved mode, drawn while idle so that a
	// finished selection stays visible.
	last Mode
}

// NewDispatcher creates a dispatcher with the Writer pen selected.
func NewDispatcher(b Behaviors) *Dispatcher {
	d := &Dispatcher{pen: Writer}
	d.behaviors[ModeWrite] = b.Write
	d.behaviors[ModeErase] = b.Erase
	d.behaviors[ModeSelect] = b.Select
	d.behaviors[ModeShape] = b.Shape
	d.last = Resolve(d.pen, 0)
	return d
}

// PenType returns the selected pen.
func (d *Dispatcher) PenType() PenType {
	return d.pen
}

// SetPenType changes the selected pen. An open gesture keeps its owner.
func (d *Dispatcher) SetPenType(p PenType) {
	d.pen = p
	if !d.active {
		d.last = Resolve(p, 0)
	}
}

// Active returns the mode owning the open gesture, if any.
func (d *Dispatcher) Active() (Mode, bool) {
	return d.owner, d.active
}

// Behavior returns the tool registered for m.
func (d *Dispatcher) Behavior(m Mode) tool.Behavior {
	return d.behaviors[m]
}

// Handle routes one event and reports whether the view needs a redraw.
func (d *Dispatcher) Handle(ctx *tool.Context, phase input.Phase, buttons input.ButtonState, p geom.Point) bool {
	mode := Resolve(d.pen, buttons)

	switch phase {
	case input.PhaseDown:
		dirty := false
		if d.active {
			logging.Logger().Debug("down during open gesture, abandoning it", "owner", d.owner)
			d.behaviors[d.owner].Reset(ctx)
			dirty = true
		}
		return d.start(ctx, mode, p) || dirty

	case input.PhaseMove:
		if !d.active {
			logging.Logger().Debug("move without down, starting gesture", "mode", mode)
			return d.start(ctx, mode, p)
		}
		return d.behaviors[d.owner].HandleTouch(ctx, input.PhaseMove, p)

	case input.PhaseUp:
		if !d.active {
			return false
		}
		d.active = false
		return d.behaviors[d.owner].HandleTouch(ctx, input.PhaseUp, p)

	case input.PhaseCancel:
		return d.Cancel(ctx)
	}
	return false
}

func (d *Dispatcher) start(ctx *tool.Context, mode Mode, p geom.Point) bool {
	d.owner, d.last, d.active = mode, mode, true
	return d.behaviors[mode].HandleTouch(ctx, input.PhaseDown, p)
}

// Cancel abandons the open gesture, if any.
func (d *Dispatcher) Cancel(ctx *tool.Context) bool {
	if !d.active {
		return false
	}
	d.behaviors[d.owner].Reset(ctx)
	d.active = false
	return true
}

// Reset abandons any gesture and clears every behavior's state.
func (d *Dispatcher) Reset(ctx *tool.Context) {
	for _, b := range d.behaviors {
		b.Reset(ctx)
	}
	d.active = false
	d.last = Resolve(d.pen, 0)
}

// Render draws the overlay of the gesture owner, or of the last resolved
// behavior when idle.
func (d *Dispatcher) Render(s surface.Surface) {
	m := d.last
	if d.active {
		m = d.owner
	}
	d.behaviors[m].Render(s)
}
