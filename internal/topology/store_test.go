package topology

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/topograph/internal/core"
)

func openSample(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topo.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	s, err := Open(path, nil)
	require.NoError(t, err)
	return s, path
}

func TestStoreMoveNodeIsNotWritten(t *testing.T) {
	s, path := openSample(t)

	var got []*core.Graph
	unsubscribe := s.Subscribe(func(g *core.Graph) { got = append(got, g) })

	require.NoError(t, s.MoveNode("gw", core.Pt(50, 60)))
	n, _ := s.Snapshot().Node("gw")
	assert.Equal(t, core.Pt(50, 60), n.Pos)
	assert.Len(t, got, 1)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, onDisk.Nodes[0].X, "moves stay in memory until persisted")

	unsubscribe()
	require.NoError(t, s.MoveNode("gw", core.Pt(0, 0)))
	assert.Len(t, got, 1)

	assert.ErrorIs(t, s.MoveNode("nope", core.Pt(0, 0)), ErrUnknownNode)
}

func TestStorePersistWritesAndReturnsPrevious(t *testing.T) {
	s, path := openSample(t)

	require.NoError(t, s.MoveNode("db", core.Pt(10, 10)))
	prev, err := s.Persist("db", core.Pt(30, 250))
	require.NoError(t, err)
	assert.Equal(t, core.Pt(0, 200), prev)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, onDisk.Nodes[1].X)
	assert.Equal(t, 250.0, onDisk.Nodes[1].Y)

	prev, err = s.Persist("db", core.Pt(0, 0))
	require.NoError(t, err)
	assert.Equal(t, core.Pt(30, 250), prev)
}

func TestStorePersistUnchangedDoesNotWrite(t *testing.T) {
	s, path := openSample(t)
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))
	before, err := os.Stat(path)
	require.NoError(t, err)

	var got []*core.Graph
	s.Subscribe(func(g *core.Graph) { got = append(got, g) })

	// A drag that wandered and came back, as a plain click does.
	require.NoError(t, s.MoveNode("db", core.Pt(40, 40)))
	prev, err := s.Persist("db", core.Pt(0, 200))
	require.NoError(t, err)
	assert.Equal(t, core.Pt(0, 200), prev)

	n, _ := s.Snapshot().Node("db")
	assert.Equal(t, core.Pt(0, 200), n.Pos, "the in-memory position is restored")
	assert.Len(t, got, 2)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "file was replaced")
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestStorePersistSkipsOtherDraggedNodes(t *testing.T) {
	s, path := openSample(t)

	require.NoError(t, s.MoveNode("gw", core.Pt(999, 999)))
	_, err := s.Persist("db", core.Pt(5, 5))
	require.NoError(t, err)

	onDisk, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, onDisk.Nodes[0].X, "gw has not been persisted yet")
}

func TestStoreConnect(t *testing.T) {
	s, path := openSample(t)
	s.newID = func() core.EdgeID { return "fixed" }

	src := core.AnchorRef{NodeID: "gw", Side: core.Bottom}
	dst := core.AnchorRef{NodeID: "db", Side: core.Top}
	e, err := s.Connect(src, dst, "calls")
	require.NoError(t, err)
	assert.Equal(t, core.EdgeID("fixed"), e.ID)
	assert.Len(t, s.Snapshot().Edges, 3)

	onDisk, err := Load(path)
	require.NoError(t, err)
	require.Len(t, onDisk.Edges, 3)
	assert.Equal(t, "calls", onDisk.Edges[2].Relation)

	_, err = s.Connect(src, dst, "")
	assert.ErrorIs(t, err, ErrDuplicateEdge)

	_, err = s.Connect(src, core.AnchorRef{NodeID: "gw", Side: core.Top}, "")
	assert.ErrorIs(t, err, ErrSelfConnection)

	_, err = s.Connect(src, core.AnchorRef{NodeID: "ghost"}, "")
	assert.ErrorIs(t, err, ErrUnknownNode)

	require.NoError(t, s.RemoveEdge("fixed"))
	assert.Len(t, s.Snapshot().Edges, 2)
	assert.ErrorIs(t, s.RemoveEdge("fixed"), ErrUnknownEdge)
}

func TestStoreConnectGeneratesUniqueIDs(t *testing.T) {
	s := NewStore(&Document{Nodes: []NodeSpec{{ID: "a"}, {ID: "b"}}}, "", nil)

	src := core.AnchorRef{NodeID: "a", Side: core.Bottom}
	dst := core.AnchorRef{NodeID: "b", Side: core.Top}
	e1, err := s.Connect(src, dst, "")
	require.NoError(t, err)
	e2, err := s.Connect(src, dst, "")
	require.NoError(t, err)
	assert.NotEqual(t, e1.ID, e2.ID)
}

func TestStoreReloadIgnoresOwnWrites(t *testing.T) {
	s, path := openSample(t)

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "file matches what was loaded")

	_, err = s.Persist("gw", core.Pt(1, 1))
	require.NoError(t, err)
	changed, err = s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "file matches what the store wrote")

	require.NoError(t, os.WriteFile(path, []byte("[[nodes]]\nid = \"solo\"\n"), 0o644))
	changed, err = s.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, s.Snapshot().Nodes, 1)
	assert.True(t, s.Snapshot().Has("solo"))
}

func TestStoreConcurrentPersist(t *testing.T) {
	s, _ := openSample(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := core.NodeID("gw")
			if i%2 == 1 {
				id = "db"
			}
			_, err := s.Persist(id, core.Pt(float64(i), float64(i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	changed, err := s.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "last write wins and matches memory")
}
