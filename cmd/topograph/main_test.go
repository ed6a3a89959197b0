package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
[[nodes]]
id = "a"
x = 0.0
y = 0.0

[[nodes]]
id = "b"
x = 0.0
y = 300.0

[[edges]]
id = "ab"
source = "a"
target = "b"
`

const brokenDoc = validDoc + `
[[edges]]
id = "loop"
source = "a"
target = "a"

[[edges]]
id = "dangling"
source = "a"
target = "ghost"
`

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestCheckValid(t *testing.T) {
	out, err := run(t, checkCmd(), writeDoc(t, validDoc))
	require.NoError(t, err)
	assert.Contains(t, out, "2 nodes, 1 edges")
}

func TestCheckReportsIssues(t *testing.T) {
	out, err := run(t, checkCmd(), writeDoc(t, brokenDoc))
	require.ErrorIs(t, err, errIssues)
	assert.Contains(t, out, "loop")
	assert.Contains(t, out, "self connection")
	assert.Contains(t, out, "dangling")
	assert.Contains(t, out, "unknown node: ghost")
}

func TestCheckMissingFile(t *testing.T) {
	_, err := run(t, checkCmd(), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestRoute(t *testing.T) {
	// Default geometry is 180x60: a.bottom = (90,60), b.top = (90,300).
	out, err := run(t, routeCmd(), writeDoc(t, validDoc), "--markers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "M 90 60 C 90 180, 90 180, 90 300")
	assert.Contains(t, out, "(90,180)")
	assert.Contains(t, out, "(90.0,60.0)")
}

func TestRouteFiltersByEdge(t *testing.T) {
	out, err := run(t, routeCmd(), writeDoc(t, validDoc), "missing")
	require.NoError(t, err)
	assert.Contains(t, out, "no routable edges")
}

func TestConfigPrintsDefaults(t *testing.T) {
	out, err := run(t, configCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "[viewport]")
	assert.Contains(t, out, "max_zoom = 3.0")
}
