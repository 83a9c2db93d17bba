package memscene

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/meigma/meshcache"
)

// ErrNothingToUndo is returned when the undo or redo stack is empty.
var ErrNothingToUndo = errors.New("memscene: nothing to undo")

// Interface compliance.
var _ meshcache.History = (*History)(nil)

type group struct {
	label string
	ops   []meshcache.UndoOp
}

// History is a grouped undo/redo stack. It is safe for concurrent use.
type History struct {
	mu      sync.Mutex
	pending *group
	undo    []*group
	redo    []*group
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Begin opens a group. An open group is cancelled first.
func (h *History) Begin() {
	h.Cancel()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = &group{}
}

// Put adds op to the open group. Without an open group op is closed.
func (h *History) Put(op meshcache.UndoOp) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		op.Close()
		return
	}
	h.pending.ops = append(h.pending.ops, op)
}

// Accept pushes the open group onto the undo stack and drops the redo stack.
func (h *History) Accept(label string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pending == nil {
		return
	}
	h.pending.label = label
	h.undo = append(h.undo, h.pending)
	h.pending = nil
	for _, g := range h.redo {
		closeGroup(g)
	}
	h.redo = nil
}

// Cancel undoes and closes the open group.
func (h *History) Cancel() {
	h.mu.Lock()
	g := h.pending
	h.pending = nil
	h.mu.Unlock()
	if g == nil {
		return
	}
	for _, op := range slices.Backward(g.ops) {
		op.Undo()
	}
	closeGroup(g)
}

// Undo reverts the most recent group and returns its label.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	if len(h.undo) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToUndo
	}
	g := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, g)
	h.mu.Unlock()

	for _, op := range slices.Backward(g.ops) {
		op.Undo()
	}
	return g.label, nil
}

// Redo reapplies the most recently undone group and returns its label.
func (h *History) Redo(ctx context.Context) (string, error) {
	h.mu.Lock()
	if len(h.redo) == 0 {
		h.mu.Unlock()
		return "", ErrNothingToUndo
	}
	g := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, g)
	h.mu.Unlock()

	for _, op := range g.ops {
		if err := op.Redo(ctx); err != nil {
			return g.label, err
		}
	}
	return g.label, nil
}

// Labels returns the undo stack labels, oldest first.
func (h *History) Labels() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.undo))
	for i, g := range h.undo {
		out[i] = g.label
	}
	return out
}

// Close releases every recorded operation.
func (h *History) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, g := range h.undo {
		closeGroup(g)
	}
	for _, g := range h.redo {
		closeGroup(g)
	}
	if h.pending != nil {
		closeGroup(h.pending)
	}
	h.undo, h.redo, h.pending = nil, nil, nil
}

func closeGroup(g *group) {
	for _, op := range g.ops {
		op.Close()
	}
}
