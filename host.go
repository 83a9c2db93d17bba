package meshcache

import (
	"context"

	meshcore "github.com/meigma/meshcache/core"
)

// Scene creates and removes objects in the host.
type Scene interface {
	// CreateNode adds an empty editable mesh object named name.
	CreateNode(name string) (Node, error)

	// RemoveNode deletes a node created by CreateNode.
	RemoveNode(n Node)
}

// Node is a live mesh object in the host scene.
type Node interface {
	meshcore.Source
	meshcore.Destination

	// Editable reports whether the node accepts in-place geometry replacement.
	Editable() bool

	// Snapshot captures the node's current geometry.
	Snapshot() Snapshot

	// RestoreSnapshot puts captured geometry back.
	RestoreSnapshot(s Snapshot)
}

// Snapshot is host-owned undo state.
type Snapshot interface {
	// Release frees the captured geometry.
	Release()
}

// History is the host's undo stack.
//
// Operations are grouped between Begin and Accept. Cancel must undo and
// close every operation put since Begin.
type History interface {
	Begin()
	Put(op UndoOp)
	Accept(label string)
	Cancel()
}

// UndoOp is one reversible change recorded in a History.
type UndoOp interface {
	// Undo reverts the change.
	Undo()

	// Redo reapplies the change without recording new history.
	Redo(ctx context.Context) error

	// Close releases state held for undo. The op is unusable afterwards.
	Close()
}
