package meshcache

import "context"

// Interface compliance.
var _ UndoOp = (*RestoreOp)(nil)

// RestoreOp records an in-place restore so the host can undo and redo it.
//
// It holds a snapshot of the node taken before the restore. Undo puts the
// snapshot back; Redo reads the package again and reapplies it.
type RestoreOp struct {
	client *Client
	node   Node
	path   string
	snap   Snapshot
}

func newRestoreOp(c *Client, node Node, path string) *RestoreOp {
	return &RestoreOp{
		client: c,
		node:   node,
		path:   path,
		snap:   node.Snapshot(),
	}
}

// Path returns the package the op restores from.
func (op *RestoreOp) Path() string {
	return op.path
}

// Undo restores the pre-restore geometry and notifies dependents.
func (op *RestoreOp) Undo() {
	if op.snap == nil {
		return
	}
	op.node.RestoreSnapshot(op.snap)
	op.node.NotifyDependents()
}

// Redo reads the package again and applies it to the node.
func (op *RestoreOp) Redo(ctx context.Context) error {
	return op.client.restoreInto(ctx, op.path, op.node)
}

// Close releases the snapshot.
func (op *RestoreOp) Close() {
	if op.snap != nil {
		op.snap.Release()
		op.snap = nil
	}
}
