package observer

import (
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// Logging decorates an Observer with debug logs for every intent.
type Logging struct {
	next   Observer
	logger *zap.Logger
}

var _ Observer = (*Logging)(nil)

// NewLogging wraps next. A nil next only logs.
func NewLogging(next Observer, logger *zap.Logger) *Logging {
	if next == nil {
		next = Funcs{}
	}
	return &Logging{next: next, logger: logger.Named("intent")}
}

func (l *Logging) OnNodeMove(id core.NodeID, pos core.Point) {
	if ce := l.logger.Check(zap.DebugLevel, "node move"); ce != nil {
		ce.Write(zap.String("node", string(id)), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	}
	l.next.OnNodeMove(id, pos)
}

func (l *Logging) OnNodePersist(id core.NodeID, pos core.Point) {
	l.logger.Debug("node persist",
		zap.String("node", string(id)),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
	)
	l.next.OnNodePersist(id, pos)
}

func (l *Logging) OnConnect(source, target core.AnchorRef) {
	l.logger.Debug("connect",
		zap.String("source", string(source.NodeID)),
		zap.Stringer("source_side", source.Side),
		zap.String("target", string(target.NodeID)),
		zap.Stringer("target_side", target.Side),
	)
	l.next.OnConnect(source, target)
}

func (l *Logging) OnNodeClick(id core.NodeID) {
	l.logger.Debug("node click", zap.String("node", string(id)))
	l.next.OnNodeClick(id)
}

func (l *Logging) OnNodeDoubleClick(id core.NodeID) {
	l.logger.Debug("node double click", zap.String("node", string(id)))
	l.next.OnNodeDoubleClick(id)
}

func (l *Logging) OnEdgeClick(id core.EdgeID) {
	l.logger.Debug("edge click", zap.String("edge", string(id)))
	l.next.OnEdgeClick(id)
}

func (l *Logging) OnEdgeDoubleClick(id core.EdgeID) {
	l.logger.Debug("edge double click", zap.String("edge", string(id)))
	l.next.OnEdgeDoubleClick(id)
}

func (l *Logging) OnCanvasClick() {
	l.logger.Debug("canvas click")
	l.next.OnCanvasClick()
}
