package history

import (
	"testing"

	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/geom"
)

func newStroke(x float64) *document.Stroke {
	s := document.NewStroke(document.Style{Color: document.ColorBlack, Weight: 1}, geom.Pt(x, 0))
	_ = s.Append(geom.Pt(x, 10))
	s.Freeze()
	return s
}

func order(d *document.Document) []string {
	out := make([]string, d.Len())
	for i := range out {
		out[i] = d.At(i).ID()
	}
	return out
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestUndoRedoAtEndsAreNoops(t *testing.T) {
	h := NewManager(document.New())
	if h.Undo() {
		t.Error("Undo() on empty history = true")
	}
	if h.Redo() {
		t.Error("Redo() on empty history = true")
	}
}

func TestUndoAllRedoAllReproducesDocument(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)

	strokes := []*document.Stroke{newStroke(0), newStroke(10), newStroke(20), newStroke(30), newStroke(40)}
	for _, s := range strokes {
		if err := h.Do(Append(doc, s)); err != nil {
			t.Fatal(err)
		}
	}
	// Erase two non-adjacent strokes in one step.
	erase := RemoveStrokes{}
	for _, s := range []*document.Stroke{strokes[3], strokes[1]} {
		idx, err := doc.Remove(s.ID())
		if err != nil {
			t.Fatal(err)
		}
		erase.Removals = append(erase.Removals, Removal{Stroke: s, Index: idx})
	}
	h.Record(erase)
	if err := h.Do(Append(doc, newStroke(50))); err != nil {
		t.Fatal(err)
	}

	want := order(doc)
	n := h.Cursor()
	for i := 0; i < n; i++ {
		if !h.Undo() {
			t.Fatalf("Undo() #%d = false", i+1)
		}
	}
	if doc.Len() != 0 {
		t.Fatalf("after undoing everything Len() = %d", doc.Len())
	}
	for i := 0; i < n; i++ {
		if !h.Redo() {
			t.Fatalf("Redo() #%d = false", i+1)
		}
	}
	if got := order(doc); !sameOrder(got, want) {
		t.Errorf("after redo order = %v, want %v", got, want)
	}
}

func TestUndoThenRedoIsNoop(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	_ = h.Do(Append(doc, newStroke(0)))
	_ = h.Do(Append(doc, newStroke(1)))

	want := order(doc)
	h.Undo()
	h.Redo()
	if got := order(doc); !sameOrder(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRecordAfterUndoDropsRedoTail(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	a, b, c := newStroke(0), newStroke(1), newStroke(2)

	_ = h.Do(Append(doc, a))
	_ = h.Do(Append(doc, b))
	h.Undo()
	_ = h.Do(Append(doc, c))

	if h.Redo() {
		t.Error("Redo() after branching = true, want false")
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if got := order(doc); !sameOrder(got, []string{a.ID(), c.ID()}) {
		t.Errorf("order = %v", got)
	}
	if doc.IndexOf(b.ID()) >= 0 {
		t.Error("stroke B reachable after branching")
	}
}

func TestRemoveStrokesRevertRestoresIndices(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	var all []*document.Stroke
	for i := 0; i < 6; i++ {
		s := newStroke(float64(i))
		all = append(all, s)
		_ = h.Do(Append(doc, s))
	}
	before := order(doc)

	// Removal order deliberately differs from index order.
	m := RemoveStrokes{}
	for _, s := range []*document.Stroke{all[4], all[0], all[2]} {
		idx, _ := doc.Remove(s.ID())
		m.Removals = append(m.Removals, Removal{Stroke: s, Index: idx})
	}
	h.Record(m)
	if doc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", doc.Len())
	}

	if !h.Undo() {
		t.Fatal("Undo() = false")
	}
	if got := order(doc); !sameOrder(got, before) {
		t.Errorf("after undo order = %v, want %v", got, before)
	}
	if !h.Redo() {
		t.Fatal("Redo() = false")
	}
	if doc.Len() != 3 {
		t.Errorf("after redo Len() = %d, want 3", doc.Len())
	}
}

func TestReplayReproducesDocument(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	a, b, c := newStroke(0), newStroke(1), newStroke(2)
	_ = h.Do(Append(doc, a))
	_ = h.Do(Append(doc, b))
	_ = h.Do(Batch{Label: "shape", Mutations: []Mutation{
		RemoveStrokes{Removals: []Removal{{Stroke: a, Index: 0}}},
		Append(doc, c),
	}})
	_ = h.Do(Append(doc, newStroke(3)))
	h.Undo()

	replayed := document.New()
	if err := h.Replay(replayed); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if got, want := order(replayed), order(doc); !sameOrder(got, want) {
		t.Errorf("replayed = %v, want %v", got, want)
	}
}

func TestBatchIsAtomic(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	a := newStroke(0)
	_ = h.Do(Append(doc, a))

	// Second child fails (stroke not present), first must be rolled back.
	bad := Batch{Mutations: []Mutation{
		AddStroke{Stroke: newStroke(1), Index: 1},
		RemoveStrokes{Removals: []Removal{{Stroke: newStroke(9), Index: 0}}},
	}}
	if err := h.Do(bad); err == nil {
		t.Fatal("Do() should fail")
	}
	if got := order(doc); !sameOrder(got, []string{a.ID()}) {
		t.Errorf("order = %v, want only A", got)
	}
	if h.Len() != 1 {
		t.Errorf("failed batch was recorded: Len() = %d", h.Len())
	}
}

func TestReset(t *testing.T) {
	doc := document.New()
	h := NewManager(doc)
	_ = h.Do(Append(doc, newStroke(0)))
	h.Reset()
	if h.CanUndo() || h.CanRedo() || h.Len() != 0 {
		t.Error("Reset() left history behind")
	}
}
