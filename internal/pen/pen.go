// Package pen picks the tool for each pointer event and routes the events of
// one gesture to a single tool behavior.
package pen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notone/notone-go/internal/input"
)

// ErrUnknownPenType is returned by ParsePenType.
var ErrUnknownPenType = errors.New("unknown pen type")

// PenType is the pen the user picked in the toolbar.
type PenType int

const (
	Writer PenType = iota
	Eraser
	Selector
	ShapeDetector
)

func (p PenType) String() string {
	switch p {
	case Writer:
		return "writer"
	case Eraser:
		return "eraser"
	case Selector:
		return "selector"
	case ShapeDetector:
		return "shape"
	default:
		return fmt.Sprintf("PenType(%d)", int(p))
	}
}

// ParsePenType accepts the names produced by String.
func ParsePenType(s string) (PenType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "writer":
		return Writer, nil
	case "eraser":
		return Eraser, nil
	case "selector":
		return Selector, nil
	case "shape", "shapedetector":
		return ShapeDetector, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPenType, s)
}

// Mode is the behavior an individual event resolves to.
type Mode int

const (
	ModeWrite Mode = iota
	ModeErase
	ModeSelect
	ModeShape

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeErase:
		return "erase"
	case ModeSelect:
		return "select"
	case ModeShape:
		return "shape"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Resolve maps the selected pen and the held buttons to a mode. Holding the
// stylus side button always erases. The Eraser pen, and any pen type this
// package does not know, erase too.
func Resolve(pen PenType, buttons input.ButtonState) Mode {
	if buttons.Has(input.ButtonStylusPrimary) {
		return ModeErase
	}
	switch pen {
	case Writer:
		return ModeWrite
	case Selector:
		return ModeSelect
	case ShapeDetector:
		return ModeShape
	default:
		return ModeErase
	}
}
