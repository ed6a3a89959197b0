package observer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	zapobs "go.uber.org/zap/zaptest/observer"

	"github.com/elektrokombinacija/topograph/internal/core"
)

func TestMultiFansOut(t *testing.T) {
	var a, b []core.NodeID
	m := Multi{
		Funcs{NodeClick: func(id core.NodeID) { a = append(a, id) }},
		Funcs{NodeClick: func(id core.NodeID) { b = append(b, id) }},
		Funcs{}, // nil fields are skipped
	}

	m.OnNodeClick("n1")
	m.OnCanvasClick()

	assert.Equal(t, []core.NodeID{"n1"}, a)
	assert.Equal(t, []core.NodeID{"n1"}, b)
}

func TestLoggingForwardsAndLogs(t *testing.T) {
	obsCore, logs := zapobs.New(zap.DebugLevel)
	logger := zap.New(obsCore)

	var connected []core.AnchorRef
	l := NewLogging(Funcs{Connect: func(s, d core.AnchorRef) { connected = append(connected, s, d) }}, logger)

	src := core.AnchorRef{NodeID: "a", Side: core.Bottom}
	dst := core.AnchorRef{NodeID: "b", Side: core.Top}
	l.OnConnect(src, dst)
	l.OnNodeMove("a", core.Pt(1, 2))

	assert.Equal(t, []core.AnchorRef{src, dst}, connected)

	entries := logs.FilterMessage("connect").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "b", entries[0].ContextMap()["target"])
		assert.Equal(t, "bottom", entries[0].ContextMap()["source_side"])
	}
	assert.Equal(t, 1, logs.FilterMessage("node move").Len())
}
