// Package state holds the editor state that outlives a single gesture:
// the selection, the undo history and the flow animation clock.
package state

import (
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/topology"
	"github.com/elektrokombinacija/topograph/internal/vis/observer"
)

// Editor applies interaction intents to a topology store and keeps the
// selection and undo history in step with them.
type Editor struct {
	Store *topology.Store
	Edit  *EditState
	Flow  *FlowClock

	logger *zap.Logger
	flush  func()
}

// NewEditor creates an editor over store.
func NewEditor(store *topology.Store, flow *FlowClock, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Editor{
		Store:  store,
		Edit:   NewEditState(100),
		Flow:   flow,
		logger: logger,
	}
	store.Subscribe(e.Edit.Prune)
	return e
}

// Snapshot returns the graph to draw.
func (e *Editor) Snapshot() *core.Graph {
	return e.Store.Snapshot()
}

// Observer returns the observer that feeds interaction intents into the
// editor.
func (e *Editor) Observer() observer.Observer {
	return observer.Funcs{
		NodeMove:    e.moveNode,
		NodePersist: e.persistNode,
		Connect:     e.connect,
		NodeClick:   e.Edit.SelectNode,
		NodeDoubleClick: func(id core.NodeID) {
			e.Edit.SelectNode(id)
		},
		EdgeClick: e.Edit.SelectEdge,
		EdgeDoubleClick: func(id core.EdgeID) {
			e.Edit.SelectEdge(id)
		},
		CanvasClick: e.Edit.ClearSelection,
	}
}

func (e *Editor) moveNode(id core.NodeID, pos core.Point) {
	if err := e.Store.MoveNode(id, pos); err != nil {
		e.logger.Warn("move failed", zap.String("node", string(id)), zap.Error(err))
	}
}

func (e *Editor) persistNode(id core.NodeID, pos core.Point) {
	prev, err := e.Store.Persist(id, pos)
	if err != nil {
		e.logger.Error("persist failed", zap.String("node", string(id)), zap.Error(err))
		return
	}
	if prev != pos {
		e.Edit.Record(&MoveNodeAction{NodeID: id, Old: prev, New: pos})
	}
}

func (e *Editor) connect(source, target core.AnchorRef) {
	edge, err := e.Store.Connect(source, target, "")
	if err != nil {
		e.logger.Warn("connect failed",
			zap.String("source", string(source.NodeID)),
			zap.String("target", string(target.NodeID)),
			zap.Error(err),
		)
		return
	}
	e.Edit.Record(&ConnectAction{Edge: edge})
	e.Edit.SelectEdge(edge.ID)
}

// SetPendingFlush installs fn to run before every Undo and Redo, so edits
// still waiting to be persisted join the history first.
func (e *Editor) SetPendingFlush(fn func()) {
	e.flush = fn
}

func (e *Editor) flushPending() {
	if e.flush != nil {
		e.flush()
	}
}

// Undo reverts the most recent edit. It reports whether anything was undone.
func (e *Editor) Undo() bool {
	e.flushPending()
	action, err := e.Edit.Undo(e.Store)
	if err != nil {
		e.logger.Error("undo failed", zap.String("action", action.Description()), zap.Error(err))
		return false
	}
	if action != nil {
		e.logger.Info("undo", zap.String("action", action.Description()))
	}
	return action != nil
}

// Redo reapplies the most recently undone edit.
func (e *Editor) Redo() bool {
	e.flushPending()
	action, err := e.Edit.Redo(e.Store)
	if err != nil {
		e.logger.Error("redo failed", zap.String("action", action.Description()), zap.Error(err))
		return false
	}
	if action != nil {
		e.logger.Info("redo", zap.String("action", action.Description()))
	}
	return action != nil
}
