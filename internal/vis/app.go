// Package vis implements the Gio topology editor window.
package vis

import (
	"fmt"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/config"
	"github.com/elektrokombinacija/topograph/internal/core"
	"github.com/elektrokombinacija/topograph/internal/topology"
	"github.com/elektrokombinacija/topograph/internal/vis/interact"
	"github.com/elektrokombinacija/topograph/internal/vis/observer"
	"github.com/elektrokombinacija/topograph/internal/vis/route"
	"github.com/elektrokombinacija/topograph/internal/vis/schedule"
	"github.com/elektrokombinacija/topograph/internal/vis/state"
	"github.com/elektrokombinacija/topograph/internal/vis/widgets"
)

// Options configures the editor window.
type Options struct {
	Config   *config.Config
	Store    *topology.Store
	ReadOnly bool
	Watch    bool // Reload the document when it changes on disk
	Logger   *zap.Logger
}

// App is the editor application.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	theme   *material.Theme
	editor  *state.Editor
	ctrl    *interact.Controller
	watcher *topology.Watcher
	canvas  *widgets.Canvas
	toolbar *widgets.Toolbar

	focus    chan core.Point
	geometry core.Geometry
}

// NewApp wires the editor together. Close must be called when done.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	sched := schedule.New(schedule.RealClock())
	geom := Geometry(cfg)
	editor := state.NewEditor(opts.Store, state.NewFlowClock(cfg.Flow.Cycle(), sched.Clock()), logger)

	a := &App{
		cfg:      cfg,
		logger:   logger,
		theme:    th,
		editor:   editor,
		focus:    make(chan core.Point, 1),
		geometry: geom,
	}

	obs := observer.NewLogging(observer.Multi{
		editor.Observer(),
		observer.Funcs{
			NodeDoubleClick: a.focusNode,
			EdgeDoubleClick: a.focusEdge,
		},
	}, logger)
	a.ctrl = interact.NewController(ControllerOptions(cfg), obs, sched, logger)
	a.ctrl.SetReadOnly(opts.ReadOnly)
	editor.SetPendingFlush(a.ctrl.FlushPersist)
	a.ctrl.SetGraph(editor.Snapshot())

	if opts.Watch && opts.Store.Path() != "" {
		w, err := topology.NewWatcher(opts.Store, sched, cfg.Timing.ReloadDebounce(), logger)
		if err != nil {
			a.ctrl.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		a.watcher = w
	}

	markers := 0
	if cfg.Flow.Enabled {
		markers = cfg.Flow.Markers
	}
	a.canvas = widgets.NewCanvas(a.ctrl, editor, widgets.CanvasStyle{
		Geometry:    geom,
		GridSpacing: cfg.Canvas.GridSpacing,
		FlowMarkers: markers,
	})
	title := "untitled"
	if p := opts.Store.Path(); p != "" {
		title = filepath.Base(p)
	}
	a.toolbar = widgets.NewToolbar(a.ctrl, editor, cfg.Viewport.FitMargin, title)
	return a, nil
}

// Geometry returns the node geometry configured in cfg.
func Geometry(cfg *config.Config) core.Geometry {
	return core.Geometry{
		Width:        cfg.Canvas.NodeWidth,
		Height:       cfg.Canvas.NodeHeight,
		AnchorRadius: cfg.Canvas.AnchorRadius,
	}
}

// ControllerOptions converts cfg into interaction settings.
func ControllerOptions(cfg *config.Config) interact.Options {
	return interact.Options{
		Geometry: Geometry(cfg),
		Limits: interact.ZoomLimits{
			Min:      cfg.Viewport.MinZoom,
			Max:      cfg.Viewport.MaxZoom,
			WheelIn:  cfg.Viewport.WheelIn,
			WheelOut: cfg.Viewport.WheelOut,
			Step:     cfg.Viewport.ZoomStep,
		},
		MoveInterval:      cfg.Timing.MoveThrottle(),
		PersistDelay:      cfg.Timing.PersistDebounce(),
		DoubleClickWindow: cfg.Timing.DoubleClick(),
		ClickSlop:         cfg.Timing.ClickSlop,
	}
}

// focusNode and focusEdge run inside Controller.Handle, so the viewport
// change is queued for the next frame.
func (a *App) focusNode(id core.NodeID) {
	n, ok := a.editor.Snapshot().Node(id)
	if !ok {
		return
	}
	a.queueFocus(n.Pos.Add(core.Pt(a.geometry.Width/2, a.geometry.Height/2)))
}

func (a *App) focusEdge(id core.EdgeID) {
	for _, e := range a.editor.Snapshot().Resolve() {
		if e.Edge.ID == id {
			a.queueFocus(route.EdgeRoute(e, a.geometry).Midpoint)
			return
		}
	}
}

func (a *App) queueFocus(p core.Point) {
	select {
	case <-a.focus:
	default:
	}
	a.focus <- p
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	defer a.Close()

	unsubscribe := a.editor.Store.Subscribe(func(*core.Graph) { w.Invalidate() })
	defer unsubscribe()

	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(
					key.Filter{Name: "Z", Required: key.ModShortcut, Optional: key.ModShift},
					key.Filter{Name: "Y", Required: key.ModShortcut},
					key.Filter{Name: "F"},
					key.Filter{Name: "0"},
					key.Filter{Name: "+", Optional: key.ModShift},
					key.Filter{Name: "-"},
					key.Filter{Name: "P"},
				)
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			select {
			case p := <-a.focus:
				a.ctrl.CenterOn(p)
			default:
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			if a.animating() {
				a.editor.Flow.Advance()
				w.Invalidate()
			}
		}
	}
}

func (a *App) animating() bool {
	return a.cfg.Flow.Enabled && a.cfg.Flow.Markers > 0 && a.editor.Flow.Playing
}

func (a *App) handleKeyEvent(e key.Event) {
	switch e.Name {
	case "Z":
		if e.Modifiers.Contain(key.ModShift) {
			a.editor.Redo()
		} else {
			a.editor.Undo()
		}
	case "Y":
		a.editor.Redo()
	case "F":
		a.ctrl.FitView(a.cfg.Viewport.FitMargin)
	case "0":
		a.ctrl.ResetView()
	case "+":
		a.ctrl.ZoomIn()
	case "-":
		a.ctrl.ZoomOut()
	case "P":
		a.editor.Flow.TogglePlay()
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.canvas.Layout(gtx, a.theme)
		}),
	)
}

// Close stops pending timers, then the file watcher. Pending persists are
// dropped; positions already persisted stay on disk. Safe to call twice.
func (a *App) Close() {
	a.ctrl.Close()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("close watcher", zap.Error(err))
		}
	}
}
