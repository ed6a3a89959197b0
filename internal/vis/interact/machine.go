package interact

import (
	"github.com/elektrokombinacija/topograph/internal/core"
)

// Mode is the active interaction.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Connecting
	Panning
)

func (m Mode) String() string {
	return [...]string{"Idle", "Dragging", "Connecting", "Panning"}[m]
}

// DragState tracks a node drag. Grab is the offset from the node origin to
// the pointer in world space, so the node does not jump under the pointer.
type DragState struct {
	Active bool
	NodeID core.NodeID
	Grab   core.Point
	Last   core.Point // Last reported world position of the node
}

// ConnectState tracks a connection being drawn from an anchor.
type ConnectState struct {
	Active bool
	Source core.AnchorRef
	Cursor core.Point // World position of the pointer
}

// PanState tracks a pan drag.
type PanState struct {
	Active bool
	Origin core.Point // Screen position of the previous pan event
}

// State is everything the interaction layer owns. At most one of Drag,
// Connect and Pan is active.
type State struct {
	Viewport   Viewport
	Drag       DragState
	Connect    ConnectState
	Pan        PanState
	PanKeyHeld bool
}

// NewState returns an idle state with the given viewport.
func NewState(vp Viewport) State {
	return State{Viewport: vp}
}

// Mode returns the active interaction.
func (s State) Mode() Mode {
	switch {
	case s.Drag.Active:
		return Dragging
	case s.Connect.Active:
		return Connecting
	case s.Pan.Active:
		return Panning
	default:
		return Idle
	}
}

// Env is the read-only context an event is interpreted against.
type Env struct {
	Graph    *core.Graph
	Geometry core.Geometry
	ReadOnly bool
}

// Reduce applies one event to s and returns the new state and the intents
// it produced. It never mutates its inputs and performs no I/O. Events that
// make no sense in the current state are ignored.
func Reduce(s State, ev Event, env Env) (State, []Effect) {
	switch ev.Kind {
	case PointerDown:
		return pointerDown(s, ev, env)
	case PointerMove:
		return pointerMove(s, ev)
	case PointerUp:
		return pointerUp(s, ev, env)
	case Wheel:
		if m := s.Mode(); m == Dragging || m == Connecting {
			return s, nil
		}
		vp := s.Viewport.ApplyZoom(ev.WheelY, ev.Pos)
		if vp == s.Viewport {
			return s, nil
		}
		s.Viewport = vp
		return s, []Effect{{Kind: EffectViewport}}
	case Click:
		return click(s, ev, env, false)
	case DoubleClick:
		return click(s, ev, env, true)
	case KeyDown:
		switch ev.Key {
		case KeyPan:
			s.PanKeyHeld = true
		case KeyEscape:
			if s.Connect.Active {
				s.Connect = ConnectState{}
			}
		}
		return s, nil
	case KeyUp:
		if ev.Key == KeyPan {
			s.PanKeyHeld = false
		}
		return s, nil
	case Cancel:
		return cancel(s)
	}
	return s, nil
}

func pointerDown(s State, ev Event, env Env) (State, []Effect) {
	if s.Mode() != Idle {
		return s, nil
	}

	if ev.Button != ButtonPrimary || s.PanKeyHeld {
		return startPan(s, ev), nil
	}

	hit := ClassifyHit(ev.Pos, s.Viewport, env.Graph, env.Geometry)
	switch hit.Kind {
	case HitAnchor:
		if env.ReadOnly {
			return s, nil
		}
		s.Connect = ConnectState{
			Active: true,
			Source: hit.Anchor,
			Cursor: hit.Anchor.Pos,
		}
	case HitNode:
		if env.ReadOnly {
			return s, nil
		}
		world := s.Viewport.ScreenToWorld(ev.Pos)
		s.Drag = DragState{
			Active: true,
			NodeID: hit.Node.ID,
			Grab:   world.Sub(hit.Node.Pos),
			Last:   hit.Node.Pos,
		}
	case HitEdge:
		// Edges are selected on click; pressing one starts nothing.
	default:
		return startPan(s, ev), nil
	}
	return s, nil
}

func startPan(s State, ev Event) State {
	s.Pan = PanState{Active: true, Origin: ev.Pos}
	return s
}

func pointerMove(s State, ev Event) (State, []Effect) {
	switch s.Mode() {
	case Dragging:
		pos := s.Viewport.ScreenToWorld(ev.Pos).Sub(s.Drag.Grab)
		s.Drag.Last = pos
		return s, []Effect{{Kind: EffectNodeMove, NodeID: s.Drag.NodeID, Pos: pos}}
	case Connecting:
		s.Connect.Cursor = s.Viewport.ScreenToWorld(ev.Pos)
		return s, nil
	case Panning:
		s.Viewport = s.Viewport.ApplyPan(ev.Pos.Sub(s.Pan.Origin))
		s.Pan.Origin = ev.Pos
		return s, []Effect{{Kind: EffectViewport}}
	}
	return s, nil
}

func pointerUp(s State, ev Event, env Env) (State, []Effect) {
	switch s.Mode() {
	case Dragging:
		pos := s.Viewport.ScreenToWorld(ev.Pos).Sub(s.Drag.Grab)
		id := s.Drag.NodeID
		s.Drag = DragState{}
		return s, []Effect{{Kind: EffectNodePersist, NodeID: id, Pos: pos}}
	case Connecting:
		source := s.Connect.Source
		s.Connect = ConnectState{}
		hit := ClassifyHit(ev.Pos, s.Viewport, env.Graph, env.Geometry)
		// Drops anywhere but another node's anchor are discarded silently.
		if hit.Kind != HitAnchor || hit.Anchor.NodeID == source.NodeID {
			return s, nil
		}
		return s, []Effect{{Kind: EffectConnect, Source: source, Target: hit.Anchor}}
	case Panning:
		s.Pan = PanState{}
	}
	return s, nil
}

func click(s State, ev Event, env Env, double bool) (State, []Effect) {
	if s.Mode() != Idle {
		return s, nil
	}
	hit := ClassifyHit(ev.Pos, s.Viewport, env.Graph, env.Geometry)
	switch hit.Kind {
	case HitNode, HitAnchor:
		if double {
			return s, []Effect{{Kind: EffectNodeDoubleClick, NodeID: hit.Node.ID}}
		}
		return s, []Effect{{Kind: EffectNodeClick, NodeID: hit.Node.ID}}
	case HitEdge:
		if double {
			return s, []Effect{{Kind: EffectEdgeDoubleClick, EdgeID: hit.Edge}}
		}
		return s, []Effect{{Kind: EffectEdgeClick, EdgeID: hit.Edge}}
	default:
		if double {
			return s, nil
		}
		return s, []Effect{{Kind: EffectCanvasClick}}
	}
}

// cancel drops whatever gesture is active. An interrupted drag still
// persists where the node was last reported.
func cancel(s State) (State, []Effect) {
	var effects []Effect
	if s.Drag.Active {
		effects = append(effects, Effect{Kind: EffectNodePersist, NodeID: s.Drag.NodeID, Pos: s.Drag.Last})
	}
	s.Drag = DragState{}
	s.Connect = ConnectState{}
	s.Pan = PanState{}
	s.PanKeyHeld = false
	return s, effects
}
