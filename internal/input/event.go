// Package input defines the events the canvas consumes from the platform
// gesture layer. Only numeric results reach the engine; recognising a pinch
// or a fling is the platform's job.
package input

import (
	"fmt"
	"strings"

	"github.com/notone/notone-go/internal/geom"
)

// Phase is the stage of a touch sequence.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	// PhaseCancel means the platform took the gesture away (focus loss,
	// palm rejection). The open gesture is abandoned.
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase maps the wire names used by the remote and wasm bindings.
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(s) {
	case "down":
		return PhaseDown, nil
	case "move":
		return PhaseMove, nil
	case "up":
		return PhaseUp, nil
	case "cancel":
		return PhaseCancel, nil
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// ToolType is the kind of device that produced a pointer.
type ToolType int

const (
	ToolUnknown ToolType = iota
	ToolStylus
	ToolFinger
	ToolMouse
)

func (t ToolType) String() string {
	switch t {
	case ToolStylus:
		return "stylus"
	case ToolFinger:
		return "finger"
	case ToolMouse:
		return "mouse"
	default:
		return "unknown"
	}
}

// ParseToolType never fails; unrecognised names are ToolUnknown.
func ParseToolType(s string) ToolType {
	switch strings.ToLower(s) {
	case "stylus", "pen":
		return ToolStylus
	case "finger", "touch":
		return ToolFinger
	case "mouse":
		return ToolMouse
	}
	return ToolUnknown
}

// ButtonState is a bitmask of buttons held during an event.
type ButtonState uint32

const (
	ButtonStylusPrimary ButtonState = 1 << iota
	ButtonStylusSecondary
)

// Has reports whether every bit of b is held.
func (s ButtonState) Has(b ButtonState) bool {
	return s&b == b
}

// PointerEvent is one raw pointer sample in screen space.
type PointerEvent struct {
	Phase        Phase       `json:"phase"`
	Position     geom.Point  `json:"position"`
	PointerCount int         `json:"pointerCount"`
	ToolType     ToolType    `json:"toolType"`
	Buttons      ButtonState `json:"buttons"`
}

// IsDrawing reports whether the event may reach the pen tools: a single
// stylus pointer. Everything else is reserved for pan and zoom.
func (e PointerEvent) IsDrawing() bool {
	return e.PointerCount <= 1 && e.ToolType == ToolStylus
}

// ScaleEvent is one step of a pinch gesture.
type ScaleEvent struct {
	Focal  geom.Point `json:"focal"`
	Factor float64    `json:"factor"`
}

// PanEvent is one step of a scroll or drag gesture, in screen pixels.
type PanEvent struct {
	DX           float64  `json:"dx"`
	DY           float64  `json:"dy"`
	PointerCount int      `json:"pointerCount"`
	ToolType     ToolType `json:"toolType"`
}

// IsNavigation reports whether the pan may move the view: more than one
// pointer, or anything other than a stylus.
func (e PanEvent) IsNavigation() bool {
	return e.PointerCount > 1 || e.ToolType != ToolStylus
}
