package remote

import (
	"encoding/json"

	"github.com/notone/notone-go/internal/document"
)

type Message struct {
	Type      string          `json:"type"`
	ClientID  string          `json:"clientId,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Input
	TypePointer = "pointer"
	TypeScale   = "scale"
	TypePan     = "pan"
	TypeView    = "view"

	// Commands
	TypeUndo     = "undo"
	TypeRedo     = "redo"
	TypeReset    = "reset"
	TypeSettings = "settings"

	// Persistence hooks
	TypeSnapshotGet  = "snapshot.get"
	TypeSnapshotLoad = "snapshot.load"

	// Outbound
	TypeWelcome  = "welcome"
	TypeRender   = "render"
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// PointerPayload is one pointer sample in screen coordinates.
type PointerPayload struct {
	Phase        string  `json:"phase"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	PointerCount int     `json:"pointerCount"`
	ToolType     string  `json:"toolType"`
	Buttons      uint32  `json:"buttons"`
}

type ScalePayload struct {
	FocalX float64 `json:"focalX"`
	FocalY float64 `json:"focalY"`
	Factor float64 `json:"factor"`
}

type PanPayload struct {
	DX           float64 `json:"dx"`
	DY           float64 `json:"dy"`
	PointerCount int     `json:"pointerCount"`
	ToolType     string  `json:"toolType"`
}

// ViewPayload installs a saved view matrix [a b c d e f], or returns to
// identity when Reset is set.
type ViewPayload struct {
	Matrix [6]float64 `json:"matrix"`
	Reset  bool       `json:"reset,omitempty"`
}

// SettingsPayload changes only the fields that are set.
type SettingsPayload struct {
	PenType *string  `json:"penType,omitempty"`
	Color   *string  `json:"color,omitempty"`
	Weight  *float64 `json:"weight,omitempty"`
	Marker  *bool    `json:"marker,omitempty"`
}

type WelcomePayload struct {
	ClientID  string `json:"clientId"`
	SessionID string `json:"sessionId"`
}

// RenderPayload carries a full frame of draw commands.
type RenderPayload struct {
	Commands  json.RawMessage `json:"commands"`
	CanUndo   bool            `json:"canUndo"`
	CanRedo   bool            `json:"canRedo"`
	Selection []string        `json:"selection,omitempty"`
}

type SnapshotPayload struct {
	Snapshot document.Snapshot `json:"snapshot"`
}

type ErrorPayload struct {
	Reason string `json:"reason"`
}
