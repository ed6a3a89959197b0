package state

import (
	"sync"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// Target is what edit actions are applied to.
type Target interface {
	Persist(id core.NodeID, pos core.Point) (core.Point, error)
	AddEdge(e core.Edge) error
	RemoveEdge(id core.EdgeID) error
}

// EditAction represents an undoable edit action.
type EditAction interface {
	Do(t Target) error
	Undo(t Target) error
	Description() string
}

// SelectionKind says what, if anything, is selected.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectNode
	SelectEdge
)

// Selection is the single selected node or edge.
type Selection struct {
	Kind SelectionKind
	Node core.NodeID
	Edge core.EdgeID
}

// EditState tracks selection and the undo history. It is safe for
// concurrent use: persistence callbacks record actions from timer
// goroutines while the UI loop reads and undoes.
type EditState struct {
	mu        sync.Mutex
	selection Selection
	undoStack []EditAction
	redoStack []EditAction
	limit     int
}

// NewEditState creates a new edit state keeping at most limit undo steps.
// A limit of 0 means unbounded.
func NewEditState(limit int) *EditState {
	return &EditState{limit: limit}
}

// Selection returns the current selection.
func (e *EditState) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

// SelectNode selects a single node.
func (e *EditState) SelectNode(id core.NodeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{Kind: SelectNode, Node: id}
}

// SelectEdge selects a single edge.
func (e *EditState) SelectEdge(id core.EdgeID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{Kind: SelectEdge, Edge: id}
}

// ClearSelection clears the selection.
func (e *EditState) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection = Selection{}
}

// IsNodeSelected checks if node is selected.
func (e *EditState) IsNodeSelected(id core.NodeID) bool {
	s := e.Selection()
	return s.Kind == SelectNode && s.Node == id
}

// IsEdgeSelected checks if edge is selected.
func (e *EditState) IsEdgeSelected(id core.EdgeID) bool {
	s := e.Selection()
	return s.Kind == SelectEdge && s.Edge == id
}

// Prune drops a selection that no longer exists in g.
func (e *EditState) Prune(g *core.Graph) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.selection.Kind {
	case SelectNode:
		if !g.Has(e.selection.Node) {
			e.selection = Selection{}
		}
	case SelectEdge:
		for _, edge := range g.Edges {
			if edge.ID == e.selection.Edge {
				return
			}
		}
		e.selection = Selection{}
	}
}

// Record adds an already applied action to the undo stack.
func (e *EditState) Record(action EditAction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.undoStack = append(e.undoStack, action)
	if e.limit > 0 && len(e.undoStack) > e.limit {
		e.undoStack = e.undoStack[len(e.undoStack)-e.limit:]
	}
	e.redoStack = nil // Clear redo stack on new action
}

// Undo undoes the last action. It returns nil when there is nothing to
// undo. On error the action stays on the undo stack.
func (e *EditState) Undo(t Target) (EditAction, error) {
	e.mu.Lock()
	if len(e.undoStack) == 0 {
		e.mu.Unlock()
		return nil, nil
	}
	action := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.mu.Unlock()

	if err := action.Undo(t); err != nil {
		e.mu.Lock()
		e.undoStack = append(e.undoStack, action)
		e.mu.Unlock()
		return action, err
	}

	e.mu.Lock()
	e.redoStack = append(e.redoStack, action)
	e.mu.Unlock()
	return action, nil
}

// Redo redoes the last undone action.
func (e *EditState) Redo(t Target) (EditAction, error) {
	e.mu.Lock()
	if len(e.redoStack) == 0 {
		e.mu.Unlock()
		return nil, nil
	}
	action := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.mu.Unlock()

	if err := action.Do(t); err != nil {
		e.mu.Lock()
		e.redoStack = append(e.redoStack, action)
		e.mu.Unlock()
		return action, err
	}

	e.mu.Lock()
	e.undoStack = append(e.undoStack, action)
	e.mu.Unlock()
	return action, nil
}

// CanUndo returns true if there are actions to undo.
func (e *EditState) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undoStack) > 0
}

// CanRedo returns true if there are actions to redo.
func (e *EditState) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.redoStack) > 0
}

// MoveNodeAction is an edit action for moving a node.
type MoveNodeAction struct {
	NodeID core.NodeID
	Old    core.Point
	New    core.Point
}

func (a *MoveNodeAction) Do(t Target) error {
	_, err := t.Persist(a.NodeID, a.New)
	return err
}

func (a *MoveNodeAction) Undo(t Target) error {
	_, err := t.Persist(a.NodeID, a.Old)
	return err
}

func (a *MoveNodeAction) Description() string {
	return "Move node"
}

// ConnectAction is an edit action for creating an edge.
type ConnectAction struct {
	Edge core.Edge
}

func (a *ConnectAction) Do(t Target) error {
	return t.AddEdge(a.Edge)
}

func (a *ConnectAction) Undo(t Target) error {
	return t.RemoveEdge(a.Edge.ID)
}

func (a *ConnectAction) Description() string {
	return "Connect"
}
