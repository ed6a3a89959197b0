// Package observer defines the outbound intents of the graph editor.
// The editor never writes positions or creates edges itself; it tells an
// Observer what the user asked for.
package observer

import (
	"github.com/elektrokombinacija/topograph/internal/core"
)

// Observer receives editor intents. OnNodeMove and OnNodePersist may be
// called from timer goroutines, so implementations must be safe for
// concurrent use.
type Observer interface {
	// OnNodeMove is called, throttled, while a node is being dragged.
	OnNodeMove(id core.NodeID, pos core.Point)

	// OnNodePersist is called, debounced per node, once a drag has ended
	// and the node has been left alone for the persist delay.
	OnNodePersist(id core.NodeID, pos core.Point)

	// OnConnect is called once per successful connect gesture.
	OnConnect(source, target core.AnchorRef)

	OnNodeClick(id core.NodeID)
	OnNodeDoubleClick(id core.NodeID)
	OnEdgeClick(id core.EdgeID)
	OnEdgeDoubleClick(id core.EdgeID)

	// OnCanvasClick is called for a click on empty canvas.
	OnCanvasClick()
}

// Funcs adapts optional functions to the Observer interface. Nil fields
// are skipped.
type Funcs struct {
	NodeMove        func(id core.NodeID, pos core.Point)
	NodePersist     func(id core.NodeID, pos core.Point)
	Connect         func(source, target core.AnchorRef)
	NodeClick       func(id core.NodeID)
	NodeDoubleClick func(id core.NodeID)
	EdgeClick       func(id core.EdgeID)
	EdgeDoubleClick func(id core.EdgeID)
	CanvasClick     func()
}

var _ Observer = Funcs{}

func (f Funcs) OnNodeMove(id core.NodeID, pos core.Point) {
	if f.NodeMove != nil {
		f.NodeMove(id, pos)
	}
}

func (f Funcs) OnNodePersist(id core.NodeID, pos core.Point) {
	if f.NodePersist != nil {
		f.NodePersist(id, pos)
	}
}

func (f Funcs) OnConnect(source, target core.AnchorRef) {
	if f.Connect != nil {
		f.Connect(source, target)
	}
}

func (f Funcs) OnNodeClick(id core.NodeID) {
	if f.NodeClick != nil {
		f.NodeClick(id)
	}
}

func (f Funcs) OnNodeDoubleClick(id core.NodeID) {
	if f.NodeDoubleClick != nil {
		f.NodeDoubleClick(id)
	}
}

func (f Funcs) OnEdgeClick(id core.EdgeID) {
	if f.EdgeClick != nil {
		f.EdgeClick(id)
	}
}

func (f Funcs) OnEdgeDoubleClick(id core.EdgeID) {
	if f.EdgeDoubleClick != nil {
		f.EdgeDoubleClick(id)
	}
}

func (f Funcs) OnCanvasClick() {
	if f.CanvasClick != nil {
		f.CanvasClick()
	}
}

// Multi fans every intent out to each observer in order.
type Multi []Observer

var _ Observer = Multi(nil)

func (m Multi) OnNodeMove(id core.NodeID, pos core.Point) {
	for _, o := range m {
		o.OnNodeMove(id, pos)
	}
}

func (m Multi) OnNodePersist(id core.NodeID, pos core.Point) {
	for _, o := range m {
		o.OnNodePersist(id, pos)
	}
}

func (m Multi) OnConnect(source, target core.AnchorRef) {
	for _, o := range m {
		o.OnConnect(source, target)
	}
}

func (m Multi) OnNodeClick(id core.NodeID) {
	for _, o := range m {
		o.OnNodeClick(id)
	}
}

func (m Multi) OnNodeDoubleClick(id core.NodeID) {
	for _, o := range m {
		o.OnNodeDoubleClick(id)
	}
}

func (m Multi) OnEdgeClick(id core.EdgeID) {
	for _, o := range m {
		o.OnEdgeClick(id)
	}
}

func (m Multi) OnEdgeDoubleClick(id core.EdgeID) {
	for _, o := range m {
		o.OnEdgeDoubleClick(id)
	}
}

func (m Multi) OnCanvasClick() {
	for _, o := range m {
		o.OnCanvasClick()
	}
}
