package history

import (
	"fmt"

	"github.com/notone/notone-go/internal/document"
)

// Mutation is one reversible change to a document.
type Mutation interface {
	// Apply performs the change.
	Apply(doc *document.Document) error
	// Revert undoes the change. It assumes the document is in the state
	// Apply left it in.
	Revert(doc *document.Document) error
	// Kind names the mutation for logs and wire messages.
	Kind() string
}

// AddStroke inserts one stroke at a fixed index.
type AddStroke struct {
	Stroke *document.Stroke
	Index  int
}

// Append returns an AddStroke that puts s on top of doc.
func Append(doc *document.Document, s *document.Stroke) AddStroke {
	return AddStroke{Stroke: s, Index: doc.Len()}
}

func (m AddStroke) Kind() string { return "stroke.add" }

func (m AddStroke) Apply(doc *document.Document) error {
	if err := doc.Insert(m.Index, m.Stroke); err != nil {
		return fmt.Errorf("apply %s: %w", m.Kind(), err)
	}
	return nil
}

// Revert removes the stroke by identity, never by geometry.
func (m AddStroke) Revert(doc *document.Document) error {
	if _, err := doc.Remove(m.Stroke.ID()); err != nil {
		return fmt.Errorf("revert %s: %w", m.Kind(), err)
	}
	return nil
}

// Removal is one stroke taken out of a document and the index it had at the
// moment it was removed.
type Removal struct {
	Stroke *document.Stroke
	Index  int
}

// RemoveStrokes deletes strokes in the recorded order.
type RemoveStrokes struct {
	Removals []Removal
}

func (m RemoveStrokes) Kind() string { return "stroke.remove" }

func (m RemoveStrokes) Apply(doc *document.Document) error {
	for i, r := range m.Removals {
		if _, err := doc.Remove(r.Stroke.ID()); err != nil {
			_ = RemoveStrokes{Removals: m.Removals[:i]}.Revert(doc)
			return fmt.Errorf("apply %s: %w", m.Kind(), err)
		}
	}
	return nil
}

// Revert re-inserts in reverse removal order. Each index was recorded
// against the document as it stood when that stroke went, so walking
// backwards puts every stroke back at its original position.
func (m RemoveStrokes) Revert(doc *document.Document) error {
	for i := len(m.Removals) - 1; i >= 0; i-- {
		r := m.Removals[i]
		if err := doc.Insert(r.Index, r.Stroke); err != nil {
			return fmt.Errorf("revert %s: %w", m.Kind(), err)
		}
	}
	return nil
}

// Batch groups mutations into one undo step.
type Batch struct {
	Label     string
	Mutations []Mutation
}

func (m Batch) Kind() string {
	if m.Label != "" {
		return m.Label
	}
	return "batch"
}

func (m Batch) Apply(doc *document.Document) error {
	for i, child := range m.Mutations {
		if err := child.Apply(doc); err != nil {
			// Roll back what already went in so the batch stays atomic.
			for j := i - 1; j >= 0; j-- {
				_ = m.Mutations[j].Revert(doc)
			}
			return err
		}
	}
	return nil
}

func (m Batch) Revert(doc *document.Document) error {
	for i := len(m.Mutations) - 1; i >= 0; i-- {
		if err := m.Mutations[i].Revert(doc); err != nil {
			for j := i + 1; j < len(m.Mutations); j++ {
				_ = m.Mutations[j].Apply(doc)
			}
			return err
		}
	}
	return nil
}
