//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/notone/notone-go/internal/canvas"
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/pen"
)

var sess *canvas.Session

func main() {
	sess = canvas.New(canvas.DefaultOptions())

	notoneCanvas := js.Global().Get("Object").New()

	// --- Input ---
	notoneCanvas.Set("pointer", js.FuncOf(pointer))
	notoneCanvas.Set("scale", js.FuncOf(scale))
	notoneCanvas.Set("pan", js.FuncOf(pan))

	// --- Commands ---
	notoneCanvas.Set("undo", js.FuncOf(undo))
	notoneCanvas.Set("redo", js.FuncOf(redo))
	notoneCanvas.Set("reset", js.FuncOf(reset))
	notoneCanvas.Set("resetView", js.FuncOf(resetView))
	notoneCanvas.Set("setView", js.FuncOf(setView))
	notoneCanvas.Set("setPenType", js.FuncOf(setPenType))
	notoneCanvas.Set("setStrokeColor", js.FuncOf(setStrokeColor))
	notoneCanvas.Set("setStrokeWeight", js.FuncOf(setStrokeWeight))
	notoneCanvas.Set("setMarker", js.FuncOf(setMarker))
	notoneCanvas.Set("restore", js.FuncOf(restore))

	// --- Queries ---
	notoneCanvas.Set("render", js.FuncOf(render))
	notoneCanvas.Set("canUndo", js.FuncOf(canUndo))
	notoneCanvas.Set("canRedo", js.FuncOf(canRedo))
	notoneCanvas.Set("getSelection", js.FuncOf(getSelection))
	notoneCanvas.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	notoneCanvas.Set("getSettings", js.FuncOf(getSettings))
	notoneCanvas.Set("getView", js.FuncOf(getView))
	notoneCanvas.Set("snapshot", js.FuncOf(snapshot))

	js.Global().Set("notoneCanvas", notoneCanvas)
	js.Global().Set("notoneWasmReady", js.ValueOf(true))

	select {}
}

func errorValue(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func okValue() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Input Handlers ---

// pointer(phase, x, y, pointerCount, toolType, buttons) reports whether the
// surface needs a redraw.
func pointer(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	phase, err := input.ParsePhase(args[0].String())
	if err != nil {
		return errorValue(err)
	}
	ev := input.PointerEvent{
		Phase:        phase,
		Position:     geom.Pt(args[1].Float(), args[2].Float()),
		PointerCount: 1,
		ToolType:     input.ToolStylus,
	}
	if len(args) > 3 {
		ev.PointerCount = args[3].Int()
	}
	if len(args) > 4 {
		ev.ToolType = input.ParseToolType(args[4].String())
	}
	if len(args) > 5 {
		ev.Buttons = input.ButtonState(args[5].Int())
	}
	return js.ValueOf(sess.HandlePointer(ev))
}

func scale(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(false)
	}
	return js.ValueOf(sess.Scale(input.ScaleEvent{
		Focal:  geom.Pt(args[0].Float(), args[1].Float()),
		Factor: args[2].Float(),
	}))
}

func pan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(false)
	}
	ev := input.PanEvent{DX: args[0].Float(), DY: args[1].Float(), PointerCount: 2, ToolType: input.ToolFinger}
	if len(args) > 2 {
		ev.PointerCount = args[2].Int()
	}
	if len(args) > 3 {
		ev.ToolType = input.ParseToolType(args[3].String())
	}
	return js.ValueOf(sess.Pan(ev))
}

// --- Command Handlers ---

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.Redo())
}

func reset(this js.Value, args []js.Value) interface{} {
	sess.Reset()
	return nil
}

func resetView(this js.Value, args []js.Value) interface{} {
	sess.ResetView()
	return nil
}

func setPenType(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing pen type"})
	}
	p, err := pen.ParsePenType(args[0].String())
	if err != nil {
		return errorValue(err)
	}
	sess.SetPenType(p)
	return okValue()
}

func setStrokeColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing color"})
	}
	c, err := document.ParseColor(args[0].String())
	if err != nil {
		return errorValue(err)
	}
	sess.SetStrokeColor(c)
	return okValue()
}

func setStrokeWeight(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing weight"})
	}
	if err := sess.SetStrokeWeight(args[0].Float()); err != nil {
		return errorValue(err)
	}
	return okValue()
}

func setMarker(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	sess.SetMarker(args[0].Bool())
	return nil
}

func restore(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing snapshot JSON"})
	}
	if err := sess.RestoreJSON([]byte(args[0].String())); err != nil {
		return errorValue(err)
	}
	return okValue()
}

// setView(a, b, c, d, e, f) installs a saved view matrix.
func setView(this js.Value, args []js.Value) interface{} {
	if len(args) < 6 {
		return js.ValueOf(map[string]interface{}{"error": "view matrix needs 6 values"})
	}
	var m geom.Matrix
	for i := range m {
		m[i] = args[i].Float()
	}
	if err := sess.SetView(m); err != nil {
		return errorValue(err)
	}
	return okValue()
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	out, err := sess.RenderJSON()
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(out)
}

func canUndo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.CanUndo())
}

func canRedo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(sess.CanRedo())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(marshalOr(sess.Selection(), "[]"))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(marshalOr(sess.SelectionBounds(), "{}"))
}

func getSettings(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(map[string]interface{}{
		"penType": sess.PenType().String(),
		"color":   sess.StrokeColor().Hex(),
		"weight":  sess.StrokeWeight(),
		"marker":  sess.Marker(),
	})
}

func snapshot(this js.Value, args []js.Value) interface{} {
	data, err := sess.SnapshotJSON()
	if err != nil {
		return errorValue(err)
	}
	return js.ValueOf(string(data))
}

func getView(this js.Value, args []js.Value) interface{} {
	m, scale := sess.View()
	return js.ValueOf(map[string]interface{}{
		"matrix": marshalOr(m.ToSlice(), "[]"),
		"scale":  scale,
	})
}

func marshalOr(v interface{}, fallback string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(data)
}
