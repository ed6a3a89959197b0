package interact

import "github.com/elektrokombinacija/topograph/internal/core"

// EventKind is the kind of input event fed to the state machine.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Wheel
	Click
	DoubleClick
	KeyDown
	KeyUp
	Cancel // Focus lost or gesture interrupted by the host
)

func (k EventKind) String() string {
	return [...]string{"PointerDown", "PointerMove", "PointerUp", "Wheel", "Click", "DoubleClick", "KeyDown", "KeyUp", "Cancel"}[k]
}

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Key is a keyboard key the editor cares about.
type Key int

const (
	KeyNone Key = iota
	KeyPan      // Held to pan with the primary button (space)
	KeyEscape
)

// Event is a raw input event in screen space.
type Event struct {
	Kind   EventKind
	Pos    core.Point // Screen position; unused for key events
	Button Button
	WheelY float64 // Wheel delta; positive scrolls down
	Key    Key
}

// EffectKind identifies an intent emitted by the state machine.
type EffectKind int

const (
	EffectNodeMove EffectKind = iota
	EffectNodePersist
	EffectConnect
	EffectNodeClick
	EffectNodeDoubleClick
	EffectEdgeClick
	EffectEdgeDoubleClick
	EffectCanvasClick
	EffectViewport
)

func (k EffectKind) String() string {
	return [...]string{"NodeMove", "NodePersist", "Connect", "NodeClick", "NodeDoubleClick", "EdgeClick", "EdgeDoubleClick", "CanvasClick", "Viewport"}[k]
}

// Effect is an intent produced by Reduce. Which fields are set depends on
// Kind.
type Effect struct {
	Kind   EffectKind
	NodeID core.NodeID
	EdgeID core.EdgeID
	Pos    core.Point // World position for node moves
	Source core.AnchorRef
	Target core.AnchorRef
}
