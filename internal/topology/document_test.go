package topology

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/topograph/internal/core"
)

const sampleDoc = `
[[nodes]]
id = "gw"
name = "Gateway"
kind = "healthy"
x = 0.0
y = 0.0

[[nodes]]
id = "db"
name = "Database"
x = 0.0
y = 200.0

[[edges]]
id = "gw-db"
source = "gw"
target = "db"
relation = "reads"
label = "sql"

[[edges]]
id = "up"
source = "db"
target = "gw"
source_anchor = "top"
target_anchor = "bottom"
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Edges, 2)

	g := doc.Graph()
	n, ok := g.Node("db")
	require.True(t, ok)
	assert.Equal(t, core.Pt(0, 200), n.Pos)
	assert.Equal(t, "Database", n.Name)

	assert.Equal(t, core.Bottom, g.Edges[0].SourceAnchor, "source anchor defaults to bottom")
	assert.Equal(t, core.Top, g.Edges[0].TargetAnchor, "target anchor defaults to top")
	assert.Equal(t, core.Top, g.Edges[1].SourceAnchor)
	assert.Equal(t, core.Bottom, g.Edges[1].TargetAnchor)
	assert.Empty(t, doc.Issues())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{"missing id", "[[nodes]]\nx = 1.0\n", nil},
		{"bad anchor", "[[nodes]]\nid = \"a\"\n[[nodes]]\nid = \"b\"\n[[edges]]\nid = \"e\"\nsource = \"a\"\ntarget = \"b\"\nsource_anchor = \"left\"\n", nil},
		{"duplicate node", "[[nodes]]\nid = \"a\"\n[[nodes]]\nid = \"a\"\n", ErrDuplicateNode},
		{"duplicate edge", "[[nodes]]\nid = \"a\"\n[[nodes]]\nid = \"b\"\n[[edges]]\nid = \"e\"\nsource = \"a\"\ntarget = \"b\"\n[[edges]]\nid = \"e\"\nsource = \"b\"\ntarget = \"a\"\n", ErrDuplicateEdge},
		{"not toml", "[[nodes]\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestIssues(t *testing.T) {
	doc := &Document{
		Nodes: []NodeSpec{{ID: "a"}, {ID: "b"}},
		Edges: []EdgeSpec{
			{ID: "ok", Source: "a", Target: "b"},
			{ID: "dangling", Source: "a", Target: "zz"},
			{ID: "loop", Source: "b", Target: "b"},
		},
	}

	issues := doc.Issues()
	require.Len(t, issues, 2)
	assert.Equal(t, core.EdgeID("dangling"), issues[0].Edge)
	assert.True(t, errors.Is(issues[0], ErrUnknownNode))
	assert.Equal(t, core.EdgeID("loop"), issues[1].Edge)
	assert.True(t, errors.Is(issues[1], ErrSelfConnection))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "topo.toml")
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Graph().Nodes, loaded.Graph().Nodes)
	assert.Equal(t, doc.Graph().Edges, loaded.Graph().Edges)
}

func TestFromGraph(t *testing.T) {
	g := core.NewGraph(
		[]core.Node{{ID: "a", Pos: core.Pt(1, 2)}, {ID: "b"}},
		[]core.Edge{{ID: "e", Source: "a", Target: "b", SourceAnchor: core.Top, TargetAnchor: core.Bottom}},
	)
	doc := FromGraph(g)
	require.NoError(t, doc.Validate())
	assert.Equal(t, g.Nodes, doc.Graph().Nodes)
	assert.Equal(t, g.Edges, doc.Graph().Edges)
}
