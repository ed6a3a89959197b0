package interact

import (
	"time"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/vis/observer"
	"github.com/elektrokombinacija/topograph/internal/vis/schedule"
)

// Options configures a Controller.
type Options struct {
	Geometry          core.Geometry
	Limits            ZoomLimits
	MoveInterval      time.Duration // Throttle for OnNodeMove
	PersistDelay      time.Duration // Per-node debounce for OnNodePersist
	DoubleClickWindow time.Duration
	ClickSlop         float64 // Screen pixels a press may travel and still click
}

// DefaultOptions returns 16ms move throttling, 1s persist debounce and
// browser-like click detection.
func DefaultOptions() Options {
	return Options{
		Geometry:          core.DefaultGeometry(),
		Limits:            DefaultZoomLimits(),
		MoveInterval:      16 * time.Millisecond,
		PersistDelay:      time.Second,
		DoubleClickWindow: 400 * time.Millisecond,
		ClickSlop:         4,
	}
}

type nodePos struct {
	id  core.NodeID
	pos core.Point
}

// Controller feeds raw events through Reduce and delivers the resulting
// intents to an Observer, rate-limiting node moves and persistence. It also
// synthesises Click and DoubleClick from press/release pairs.
//
// Handle and the accessors are meant to be called from a single goroutine
// (the UI loop). Observer methods for moves and persistence arrive on timer
// goroutines.
type Controller struct {
	opts   Options
	obs    observer.Observer
	logger *zap.Logger

	state State
	env   Env

	sched   *schedule.Scheduler
	moves   *schedule.Throttle[nodePos]
	persist *schedule.KeyedDebounce[core.NodeID, core.Point]

	press     pressInfo
	lastClick clickInfo
	closed    bool
}

type pressInfo struct {
	active bool
	pos    core.Point
	hit    Hit
}

type clickInfo struct {
	valid bool
	at    time.Time
	hit   Hit
}

// NewController creates a controller. sched owns the timers; closing the
// controller closes sched.
func NewController(opts Options, obs observer.Observer, sched *schedule.Scheduler, logger *zap.Logger) *Controller {
	if obs == nil {
		obs = observer.Funcs{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		opts:   opts,
		obs:    obs,
		logger: logger.Named("interact"),
		state:  NewState(NewViewport(opts.Limits)),
		env:    Env{Geometry: opts.Geometry},
		sched:  sched,
	}
	c.moves = schedule.NewThrottle(sched, opts.MoveInterval, func(m nodePos) {
		c.obs.OnNodeMove(m.id, m.pos)
	})
	c.persist = schedule.NewKeyedDebounce(sched, opts.PersistDelay, func(id core.NodeID, pos core.Point) {
		c.obs.OnNodePersist(id, pos)
	})
	return c
}

// SetGraph supplies the snapshot the next events are interpreted against.
func (c *Controller) SetGraph(g *core.Graph) {
	c.env.Graph = g
}

// SetReadOnly disables dragging and connecting.
func (c *Controller) SetReadOnly(ro bool) {
	c.env.ReadOnly = ro
}

// ReadOnly reports whether editing is disabled.
func (c *Controller) ReadOnly() bool {
	return c.env.ReadOnly
}

// SetViewportSize records the visible area, used to pivot button zoom.
func (c *Controller) SetViewportSize(size core.Point) {
	c.state.Viewport.Size = size
}

// State returns a copy of the interaction state.
func (c *Controller) State() State {
	return c.state
}

// Viewport returns the current viewport.
func (c *Controller) Viewport() Viewport {
	return c.state.Viewport
}

// ZoomIn, ZoomOut, ResetView and FitView back the toolbar buttons.
func (c *Controller) ZoomIn() {
	c.state.Viewport = c.state.Viewport.ZoomIn()
}

func (c *Controller) ZoomOut() {
	c.state.Viewport = c.state.Viewport.ZoomOut()
}

func (c *Controller) ResetView() {
	c.state.Viewport = c.state.Viewport.Reset()
}

// CenterOn pans so the world point is in the middle of the canvas.
func (c *Controller) CenterOn(world core.Point) {
	c.state.Viewport = c.state.Viewport.CenterOn(world)
}

func (c *Controller) FitView(margin float64) {
	lo, hi, ok := c.env.Graph.Bounds(c.env.Geometry)
	if !ok {
		return
	}
	c.state.Viewport = c.state.Viewport.FitBounds(lo, hi, margin)
}

// Handle processes one raw event.
func (c *Controller) Handle(ev Event) {
	if c.closed {
		return
	}

	var hit Hit
	if ev.Kind == PointerDown || ev.Kind == PointerUp {
		hit = ClassifyHit(ev.Pos, c.state.Viewport, c.env.Graph, c.env.Geometry)
	}

	c.apply(ev)

	switch ev.Kind {
	case PointerDown:
		c.press = pressInfo{active: ev.Button == ButtonPrimary, pos: ev.Pos, hit: hit}
	case PointerUp:
		c.releasePress(ev, hit)
	case Cancel:
		c.press = pressInfo{}
		c.lastClick = clickInfo{}
	}
}

func (c *Controller) releasePress(ev Event, hit Hit) {
	p := c.press
	c.press = pressInfo{}
	if !p.active || !p.hit.Same(hit) {
		return
	}
	d := ev.Pos.Sub(p.pos)
	if d.X*d.X+d.Y*d.Y > c.opts.ClickSlop*c.opts.ClickSlop {
		return
	}

	c.apply(Event{Kind: Click, Pos: ev.Pos})

	now := c.sched.Clock().Now()
	last := c.lastClick
	if last.valid && last.hit.Same(hit) && now.Sub(last.at) <= c.opts.DoubleClickWindow {
		c.apply(Event{Kind: DoubleClick, Pos: ev.Pos})
		c.lastClick = clickInfo{}
		return
	}
	c.lastClick = clickInfo{valid: true, at: now, hit: hit}
}

func (c *Controller) apply(ev Event) {
	before := c.state.Mode()
	var effects []Effect
	c.state, effects = Reduce(c.state, ev, c.env)
	if after := c.state.Mode(); after != before {
		c.logger.Debug("mode change",
			zap.Stringer("from", before),
			zap.Stringer("to", after),
			zap.Stringer("event", ev.Kind),
		)
	}
	for _, e := range effects {
		c.deliver(e)
	}
}

func (c *Controller) deliver(e Effect) {
	switch e.Kind {
	case EffectNodeMove:
		c.moves.Call(nodePos{id: e.NodeID, pos: e.Pos})
	case EffectNodePersist:
		// Let the last drag position out before the persist timer starts.
		c.moves.Flush()
		c.persist.Call(e.NodeID, e.Pos)
	case EffectConnect:
		c.obs.OnConnect(e.Source, e.Target)
	case EffectNodeClick:
		c.obs.OnNodeClick(e.NodeID)
	case EffectNodeDoubleClick:
		c.obs.OnNodeDoubleClick(e.NodeID)
	case EffectEdgeClick:
		c.obs.OnEdgeClick(e.EdgeID)
	case EffectEdgeDoubleClick:
		c.obs.OnEdgeDoubleClick(e.EdgeID)
	case EffectCanvasClick:
		c.obs.OnCanvasClick()
	case EffectViewport:
		// Read back through Viewport on the next frame.
	}
}

// FlushPersist delivers every debounced OnNodePersist now. Call it before
// acting on the persisted history so a late persist cannot land on top.
func (c *Controller) FlushPersist() {
	if c.closed {
		return
	}
	c.persist.Flush()
}

// Close cancels pending throttled and debounced calls and ignores further
// events. It is safe to call more than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	// Teardown drops the interrupted drag's persist along with pending timers.
	c.state, _ = cancel(c.state)
	c.sched.Close()
}
