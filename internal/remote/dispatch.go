package remote

import (
	"encoding/json"
	"fmt"

	"github.com/notone/notone-go/internal/canvas"
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/input"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/pen"
)

// Dispatch applies one inbound message to sess and returns the replies.
// A render frame is sent whenever the message changed what is on screen.
func Dispatch(sess *canvas.Session, msg *Message) []*Message {
	dirty, reply, err := apply(sess, msg)
	if err != nil {
		logging.Logger().Warn("rejected message", "type", msg.Type, "session", sess.ID(), "error", err)
		return []*Message{errorMessage(msg.Seq, err)}
	}

	var out []*Message
	if reply != nil {
		out = append(out, reply)
	}
	if dirty {
		frame, err := renderMessage(sess, msg.Seq)
		if err != nil {
			return append(out, errorMessage(msg.Seq, err))
		}
		out = append(out, frame)
	}
	return out
}

func apply(sess *canvas.Session, msg *Message) (dirty bool, reply *Message, err error) {
	switch msg.Type {
	case TypePointer:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid pointer payload: %w", err)
		}
		phase, err := input.ParsePhase(p.Phase)
		if err != nil {
			return false, nil, err
		}
		return sess.HandlePointer(input.PointerEvent{
			Phase:        phase,
			Position:     geom.Pt(p.X, p.Y),
			PointerCount: p.PointerCount,
			ToolType:     input.ParseToolType(p.ToolType),
			Buttons:      input.ButtonState(p.Buttons),
		}), nil, nil

	case TypeScale:
		var p ScalePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid scale payload: %w", err)
		}
		return sess.Scale(input.ScaleEvent{Focal: geom.Pt(p.FocalX, p.FocalY), Factor: p.Factor}), nil, nil

	case TypePan:
		var p PanPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid pan payload: %w", err)
		}
		return sess.Pan(input.PanEvent{
			DX:           p.DX,
			DY:           p.DY,
			PointerCount: p.PointerCount,
			ToolType:     input.ParseToolType(p.ToolType),
		}), nil, nil

	case TypeView:
		var p ViewPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid view payload: %w", err)
		}
		if p.Reset {
			sess.ResetView()
			return true, nil, nil
		}
		if err := sess.SetView(geom.Matrix(p.Matrix)); err != nil {
			return false, nil, err
		}
		return true, nil, nil

	case TypeUndo:
		return sess.Undo(), nil, nil

	case TypeRedo:
		return sess.Redo(), nil, nil

	case TypeReset:
		sess.Reset()
		return true, nil, nil

	case TypeSettings:
		var p SettingsPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid settings payload: %w", err)
		}
		return false, nil, applySettings(sess, p)

	case TypeSnapshotGet:
		payload, err := json.Marshal(SnapshotPayload{Snapshot: sess.Snapshot()})
		if err != nil {
			return false, nil, err
		}
		return false, &Message{Type: TypeSnapshot, Seq: msg.Seq, Payload: payload}, nil

	case TypeSnapshotLoad:
		var p SnapshotPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return false, nil, fmt.Errorf("invalid snapshot payload: %w", err)
		}
		if err := sess.Restore(p.Snapshot); err != nil {
			return false, nil, err
		}
		return true, nil, nil
	}
	return false, nil, fmt.Errorf("unknown message type %q", msg.Type)
}

// applySettings validates every field before changing anything.
func applySettings(sess *canvas.Session, p SettingsPayload) error {
	var (
		penType pen.PenType
		color   document.Color
		err     error
	)
	if p.PenType != nil {
		if penType, err = pen.ParsePenType(*p.PenType); err != nil {
			return err
		}
	}
	if p.Color != nil {
		if color, err = document.ParseColor(*p.Color); err != nil {
			return err
		}
	}
	if p.Weight != nil {
		if err := sess.SetStrokeWeight(*p.Weight); err != nil {
			return err
		}
	}
	if p.PenType != nil {
		sess.SetPenType(penType)
	}
	if p.Color != nil {
		sess.SetStrokeColor(color)
	}
	if p.Marker != nil {
		sess.SetMarker(*p.Marker)
	}
	return nil
}

func renderMessage(sess *canvas.Session, seq int64) (*Message, error) {
	commands, err := sess.RenderJSON()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	payload, err := json.Marshal(RenderPayload{
		Commands:  json.RawMessage(commands),
		CanUndo:   sess.CanUndo(),
		CanRedo:   sess.CanRedo(),
		Selection: sess.Selection(),
	})
	if err != nil {
		return nil, err
	}
	return &Message{Type: TypeRender, Seq: seq, Payload: payload}, nil
}

func errorMessage(seq int64, err error) *Message {
	payload, _ := json.Marshal(ErrorPayload{Reason: err.Error()})
	return &Message{Type: TypeError, Seq: seq, Payload: payload}
}
