// Package history records reversible document mutations and walks them
// backward and forward.
//
// The history is linear: nodes[:cursor] have been applied, nodes[cursor:]
// form the redo tail. Recording anything new while the cursor sits before
// the end discards that tail, so an undone branch is never reachable again.
package history

import (
	"github.com/notone/notone-go/internal/document"
	"github.com/notone/notone-go/internal/logging"
	"github.com/notone/notone-go/internal/typeid"
)

// Node is one undo step.
type Node struct {
	ID       string
	Mutation Mutation
}

// Manager owns the undo/redo state for a single document.
type Manager struct {
	doc    *document.Document
	nodes  []*Node
	cursor int
}

// NewManager creates an empty history bound to doc.
func NewManager(doc *document.Document) *Manager {
	return &Manager{doc: doc}
}

// Do applies m to the document and records it.
func (h *Manager) Do(m Mutation) error {
	if err := m.Apply(h.doc); err != nil {
		return err
	}
	h.Record(m)
	return nil
}

// Record appends an already-applied mutation, truncating the redo tail.
func (h *Manager) Record(m Mutation) *Node {
	for i := h.cursor; i < len(h.nodes); i++ {
		h.nodes[i] = nil
	}
	h.nodes = h.nodes[:h.cursor]

	n := &Node{ID: typeid.NewHistoryID(), Mutation: m}
	h.nodes = append(h.nodes, n)
	h.cursor = len(h.nodes)
	return n
}

// Undo reverts the most recent applied node. It returns false when there is
// nothing to undo or the revert failed.
func (h *Manager) Undo() bool {
	if h.cursor == 0 {
		return false
	}
	n := h.nodes[h.cursor-1]
	if err := n.Mutation.Revert(h.doc); err != nil {
		logging.Logger().Warn("undo failed", "node", n.ID, "kind", n.Mutation.Kind(), "error", err)
		return false
	}
	h.cursor--
	return true
}

// Redo re-applies the next node of the redo tail. It returns false when the
// tail is empty or the apply failed.
func (h *Manager) Redo() bool {
	if h.cursor == len(h.nodes) {
		return false
	}
	n := h.nodes[h.cursor]
	if err := n.Mutation.Apply(h.doc); err != nil {
		logging.Logger().Warn("redo failed", "node", n.ID, "kind", n.Mutation.Kind(), "error", err)
		return false
	}
	h.cursor++
	return true
}

// Reset forgets every node. The document is not touched.
func (h *Manager) Reset() {
	h.nodes = nil
	h.cursor = 0
}

func (h *Manager) CanUndo() bool { return h.cursor > 0 }
func (h *Manager) CanRedo() bool { return h.cursor < len(h.nodes) }

// Len returns the number of recorded nodes, including the redo tail.
func (h *Manager) Len() int { return len(h.nodes) }

// Cursor returns how many nodes are currently applied.
func (h *Manager) Cursor() int { return h.cursor }

// Replay applies the active path, oldest first, to another document.
// Starting from a copy of the managed document as it was at construction or
// at the last Reset, this reproduces the managed one. For a fresh canvas that
// base is empty; after a snapshot restore it is the restored strokes.
func (h *Manager) Replay(into *document.Document) error {
	for _, n := range h.nodes[:h.cursor] {
		if err := n.Mutation.Apply(into); err != nil {
			return err
		}
	}
	return nil
}
