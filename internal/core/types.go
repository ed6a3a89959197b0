// Package core defines domain models for the topology editor.
package core

import (
	"fmt"
	"strings"
)

// Point is a 2D coordinate. The same type carries world-space and
// screen-space values; callers keep track of which is which.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns p divided by s.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// AnchorSide identifies a connection point on a node.
type AnchorSide int

const (
	Top AnchorSide = iota
	Bottom
)

func (s AnchorSide) String() string {
	return [...]string{"top", "bottom"}[s]
}

// Opposite returns the other side.
func (s AnchorSide) Opposite() AnchorSide {
	if s == Top {
		return Bottom
	}
	return Top
}

// ParseAnchorSide parses "top" or "bottom" (case-insensitive).
func ParseAnchorSide(s string) (AnchorSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, nil
	case "bottom":
		return Bottom, nil
	default:
		return Top, fmt.Errorf("unknown anchor side %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s AnchorSide) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AnchorSide) UnmarshalText(b []byte) error {
	v, err := ParseAnchorSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// NodeID is a unique node identifier.
type NodeID string

// EdgeID is a unique edge identifier.
type EdgeID string

// Node is a box on the canvas. Pos is the top-left corner in world space.
type Node struct {
	ID   NodeID
	Pos  Point
	Kind string // Status/kind tag, used for colouring
	Name string
}

// Edge connects an anchor of one node to an anchor of another.
type Edge struct {
	ID           EdgeID
	Source       NodeID
	Target       NodeID
	SourceAnchor AnchorSide
	TargetAnchor AnchorSide
	Relation     string
	Label        string
}

// AnchorRef is a resolved anchor: which node, which side, and where.
type AnchorRef struct {
	NodeID NodeID
	Side   AnchorSide
	Pos    Point // World space
}

// Geometry is the fixed node box used for layout and hit testing.
type Geometry struct {
	Width        float64
	Height       float64
	AnchorRadius float64
}

// DefaultGeometry matches the default [canvas] config section.
func DefaultGeometry() Geometry {
	return Geometry{Width: 180, Height: 60, AnchorRadius: 6}
}
