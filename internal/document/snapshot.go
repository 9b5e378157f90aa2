package document

import (
	"encoding/json"
	"fmt"

	"github.com/notone/notone-go/internal/geom"
	"github.com/notone/notone-go/internal/typeid"
)

// SnapshotVersion is the current snapshot layout.
const SnapshotVersion = 1

// Snapshot is a lossless copy of a document's stroke sequence that an
// external persistence layer can store and hand back to Restore.
type Snapshot struct {
	Version int          `json:"version"`
	Strokes []StrokeData `json:"strokes"`
}

type StrokeData struct {
	ID     string       `json:"id"`
	Kind   Kind         `json:"kind"`
	Style  Style        `json:"style"`
	Points []geom.Point `json:"points"`
}

// Snapshot copies the current strokes.
func (d *Document) Snapshot() Snapshot {
	snap := Snapshot{
		Version: SnapshotVersion,
		Strokes: make([]StrokeData, 0, len(d.strokes)),
	}
	for _, s := range d.strokes {
		snap.Strokes = append(snap.Strokes, StrokeData{
			ID:     s.id,
			Kind:   s.kind,
			Style:  s.style,
			Points: s.Points(),
		})
	}
	return snap
}

// Restore replaces the document contents with the snapshot. On error the
// document is left untouched.
func (d *Document) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("restore snapshot: unsupported version %d", snap.Version)
	}

	next := New()
	for i, sd := range snap.Strokes {
		if err := typeid.Validate(sd.ID, typeid.PrefixStroke); err != nil {
			return fmt.Errorf("restore stroke %d: %w", i, err)
		}
		if len(sd.Points) == 0 {
			return fmt.Errorf("restore stroke %d (%s): no points", i, sd.ID)
		}
		for j, p := range sd.Points {
			if !p.IsFinite() {
				return fmt.Errorf("restore stroke %d (%s): point %d is not finite", i, sd.ID, j)
			}
		}
		kind := sd.Kind
		if kind == "" {
			kind = KindFreehand
		}
		s := &Stroke{
			id:     sd.ID,
			style:  sd.Style,
			kind:   kind,
			points: append([]geom.Point(nil), sd.Points...),
			frozen: true,
		}
		if err := next.Append(s); err != nil {
			return fmt.Errorf("restore stroke %d: %w", i, err)
		}
	}

	d.strokes = next.strokes
	return nil
}

// MarshalSnapshot encodes the document as snapshot JSON.
func (d *Document) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}

// UnmarshalSnapshot decodes snapshot JSON and restores it into d.
func (d *Document) UnmarshalSnapshot(data []byte) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	return d.Restore(snap)
}
