// Package surface is the boundary between the canvas engine and whatever
// paints pixels. The engine only issues calls through Surface; Recorder turns
// those calls into a JSON command list for browser and remote front ends.
package surface

import (
	"encoding/json"

	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
)

// Surface receives draw calls in painter's order. Coordinates are logical;
// SetTransform gives the mapping to screen for everything that follows.
type Surface interface {
	SetTransform(m geom.Matrix)
	DrawPolyline(pts []geom.Point, style document.Style, closed bool)
	DrawRect(r geom.Rect, style document.Style, dashed bool)
}

// PathCommand is one path segment in Canvas2D form: ["M", x, y], ["L", x, y]
// or ["Z"].
type PathCommand []interface{}

// DrawCommand is a single operation for the front end to execute.
type DrawCommand struct {
	Op          string        `json:"op"`                    // "transform", "path", "rect"
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f]
	Path        []PathCommand `json:"path,omitempty"`        // for "path"
	Rect        *geom.Rect    `json:"rect,omitempty"`        // for "rect"
	Stroke      string        `json:"stroke,omitempty"`      // stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // logical units
	Opacity     float64       `json:"opacity,omitempty"`     // global alpha
	Dashed      bool          `json:"dashed,omitempty"`
}

// MarkerOpacity is the alpha applied on top of the color for marker strokes.
const MarkerOpacity = 0.4

// Recorder is a Surface that buffers draw commands.
type Recorder struct {
	commands []DrawCommand
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetTransform(m geom.Matrix) {
	r.commands = append(r.commands, DrawCommand{Op: "transform", Transform: m.ToSlice()})
}

func (r *Recorder) DrawPolyline(pts []geom.Point, style document.Style, closed bool) {
	if len(pts) == 0 {
		return
	}
	path := make([]PathCommand, 0, len(pts)+1)
	path = append(path, PathCommand{"M", pts[0].X, pts[0].Y})
	for _, p := range pts[1:] {
		path = append(path, PathCommand{"L", p.X, p.Y})
	}
	if closed {
		path = append(path, PathCommand{"Z"})
	}
	r.commands = append(r.commands, DrawCommand{
		Op:          "path",
		Path:        path,
		Stroke:      style.Color.Hex(),
		StrokeWidth: style.Weight,
		Opacity:     opacity(style),
	})
}

func (r *Recorder) DrawRect(rect geom.Rect, style document.Style, dashed bool) {
	rc := rect
	r.commands = append(r.commands, DrawCommand{
		Op:          "rect",
		Rect:        &rc,
		Stroke:      style.Color.Hex(),
		StrokeWidth: style.Weight,
		Opacity:     opacity(style),
		Dashed:      dashed,
	})
}

// Commands returns the recorded commands.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// ToJSON serializes the recorded commands.
func (r *Recorder) ToJSON() (string, error) {
	return CommandsToJSON(r.commands)
}

// CommandsToJSON serializes draw commands to JSON.
func CommandsToJSON(commands []DrawCommand) (string, error) {
	if len(commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func opacity(style document.Style) float64 {
	a := style.Color.Alpha()
	if style.Marker {
		a *= MarkerOpacity
	}
	return a
}
