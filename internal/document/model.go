package document

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 0xAARRGGBB value.
type Color uint32

// Common pen colors.
const (
	ColorBlack Color = 0xFF000000
	ColorRed   Color = 0xFFFF0000
	ColorBlue  Color = 0xFF0000FF
)

// ParseColor accepts "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color(0xFF000000 | uint32(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", s, err)
		}
		return Color(v), nil
	default:
		return 0, fmt.Errorf("parse color %q: want #RRGGBB or #AARRGGBB", s)
	}
}

// Alpha returns the alpha channel in [0, 1].
func (c Color) Alpha() float64 {
	return float64(c>>24) / 255
}

// Hex returns the color as "#RRGGBB", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// String returns "#AARRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// Style is the paint captured by a stroke when it is created.
type Style struct {
	Color  Color   `json:"color"`
	Weight float64 `json:"weight"`
	// Marker strokes render translucent, like a highlighter.
	Marker bool `json:"marker,omitempty"`
}

// Kind records how a stroke was produced.
type Kind string

const (
	KindFreehand  Kind = "freehand"
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
)

// Closed reports whether strokes of this kind connect their last point back
// to the first.
func (k Kind) Closed() bool {
	return k == KindRectangle || k == KindEllipse
}
