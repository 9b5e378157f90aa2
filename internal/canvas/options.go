package canvas

import (
	"fmt"

	"github.com/notone/notone-go/internal/config"
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/pen"
	"github.com/notone/notone-go/internal/tool"
	"github.com/notone/notone-go/internal/viewport"
)

// Options configures a new Session.
type Options struct {
	MinScale float64
	MaxScale float64

	Style   document.Style
	PenType pen.PenType

	EraserRadius     float64
	MinPointDistance float64
	ShapeTolerance   float64

	// StylusOnly keeps finger and mouse input away from the pen tools.
	StylusOnly bool
	// Strict panics on a singular view matrix instead of falling back to
	// identity. Meant for development builds.
	Strict bool
}

// DefaultOptions mirrors the config defaults.
func DefaultOptions() Options {
	return Options{
		MinScale:       viewport.DefaultMinScale,
		MaxScale:       viewport.DefaultMaxScale,
		Style:          document.Style{Color: document.ColorRed, Weight: 10},
		PenType:        pen.Writer,
		EraserRadius:   tool.DefaultEraserRadius,
		ShapeTolerance: tool.DefaultShapeTolerance,
		StylusOnly:     true,
	}
}

// OptionsFromConfig builds session options from the canvas config section.
func OptionsFromConfig(c config.Canvas) (Options, error) {
	color, err := document.ParseColor(c.StrokeColor)
	if err != nil {
		return Options{}, fmt.Errorf("canvas config: %w", err)
	}
	if c.StrokeWeight <= 0 {
		return Options{}, fmt.Errorf("canvas config: stroke weight %v: %w", c.StrokeWeight, ErrInvalidWeight)
	}
	return Options{
		MinScale:         c.MinScale,
		MaxScale:         c.MaxScale,
		Style:            document.Style{Color: color, Weight: c.StrokeWeight},
		PenType:          pen.Writer,
		EraserRadius:     c.EraserRadius,
		MinPointDistance: c.MinPointDistance,
		ShapeTolerance:   c.ShapeTolerance,
		StylusOnly:       c.StylusOnly,
		Strict:           c.Strict,
	}, nil
}
