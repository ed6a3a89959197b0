// Package topology stores the graph shown by the editor. A Document is the
// TOML file on disk, a Store is the live copy the editor reads and writes,
// and a Watcher reloads the Store when the file changes underneath it.
package topology

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/elektrokombinacija/topograph/internal/core"
)

var (
	ErrUnknownNode    = errors.New("unknown node")
	ErrDuplicateNode  = errors.New("duplicate node id")
	ErrDuplicateEdge  = errors.New("duplicate edge id")
	ErrSelfConnection = errors.New("self connection")
	ErrUnknownEdge    = errors.New("unknown edge")
)

// Document is the on-disk form of a topology.
type Document struct {
	Nodes []NodeSpec `toml:"nodes" validate:"dive"`
	Edges []EdgeSpec `toml:"edges" validate:"dive"`
}

// NodeSpec is one [[nodes]] table.
type NodeSpec struct {
	ID   string  `toml:"id" validate:"required"`
	Name string  `toml:"name,omitempty"`
	Kind string  `toml:"kind,omitempty"`
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
}

// EdgeSpec is one [[edges]] table. Anchors default to source bottom and
// target top.
type EdgeSpec struct {
	ID           string `toml:"id" validate:"required"`
	Source       string `toml:"source" validate:"required"`
	Target       string `toml:"target" validate:"required"`
	SourceAnchor string `toml:"source_anchor,omitempty" validate:"omitempty,oneof=top bottom"`
	TargetAnchor string `toml:"target_anchor,omitempty" validate:"omitempty,oneof=top bottom"`
	Relation     string `toml:"relation,omitempty"`
	Label        string `toml:"label,omitempty"`
}

// Issue is a problem that does not stop a document from loading.
type Issue struct {
	Edge core.EdgeID
	Err  error
}

func (i Issue) Error() string {
	return fmt.Sprintf("edge %s: %v", i.Edge, i.Err)
}

func (i Issue) Unwrap() error { return i.Err }

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode renders the document as TOML.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return nil, fmt.Errorf("encode topology: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path via a temporary file and rename.
func (d *Document) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save topology: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save topology: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save topology: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save topology: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate reports field errors and duplicate ids. Dangling edges and self
// loops are reported by Issues instead; they load but are not drawn.
func (d *Document) Validate() error {
	var errs []error
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, e := range verrs {
			errs = append(errs, fmt.Errorf("%s: failed %s", strings.TrimPrefix(e.Namespace(), "Document."), e.Tag()))
		}
	}

	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if nodes[n.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID))
		}
		nodes[n.ID] = true
	}
	edges := make(map[string]bool, len(d.Edges))
	for _, e := range d.Edges {
		if edges[e.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateEdge, e.ID))
		}
		edges[e.ID] = true
	}
	return errors.Join(errs...)
}

// Issues lists edges that reference missing nodes or loop onto their own
// node.
func (d *Document) Issues() []Issue {
	nodes := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes[n.ID] = true
	}

	var out []Issue
	for _, e := range d.Edges {
		id := core.EdgeID(e.ID)
		switch {
		case !nodes[e.Source]:
			out = append(out, Issue{Edge: id, Err: fmt.Errorf("%w: %s", ErrUnknownNode, e.Source)})
		case !nodes[e.Target]:
			out = append(out, Issue{Edge: id, Err: fmt.Errorf("%w: %s", ErrUnknownNode, e.Target)})
		case e.Source == e.Target:
			out = append(out, Issue{Edge: id, Err: ErrSelfConnection})
		}
	}
	return out
}

// Graph converts the document into an editor snapshot.
func (d *Document) Graph() *core.Graph {
	if d == nil {
		return core.NewGraph(nil, nil)
	}
	nodes := make([]core.Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		nodes = append(nodes, core.Node{
			ID:   core.NodeID(n.ID),
			Pos:  core.Pt(n.X, n.Y),
			Kind: n.Kind,
			Name: n.Name,
		})
	}
	edges := make([]core.Edge, 0, len(d.Edges))
	for _, e := range d.Edges {
		edges = append(edges, core.Edge{
			ID:           core.EdgeID(e.ID),
			Source:       core.NodeID(e.Source),
			Target:       core.NodeID(e.Target),
			SourceAnchor: parseSide(e.SourceAnchor, core.Bottom),
			TargetAnchor: parseSide(e.TargetAnchor, core.Top),
			Relation:     e.Relation,
			Label:        e.Label,
		})
	}
	return core.NewGraph(nodes, edges)
}

// FromGraph converts a snapshot back into a document.
func FromGraph(g *core.Graph) *Document {
	doc := &Document{}
	if g == nil {
		return doc
	}
	for _, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, NodeSpec{
			ID:   string(n.ID),
			Name: n.Name,
			Kind: n.Kind,
			X:    n.Pos.X,
			Y:    n.Pos.Y,
		})
	}
	for _, e := range g.Edges {
		doc.Edges = append(doc.Edges, EdgeSpec{
			ID:           string(e.ID),
			Source:       string(e.Source),
			Target:       string(e.Target),
			SourceAnchor: e.SourceAnchor.String(),
			TargetAnchor: e.TargetAnchor.String(),
			Relation:     e.Relation,
			Label:        e.Label,
		})
	}
	return doc
}

func parseSide(s string, def core.AnchorSide) core.AnchorSide {
	if s == "" {
		return def
	}
	side, err := core.ParseAnchorSide(s)
	if err != nil {
		return def
	}
	return side
}
