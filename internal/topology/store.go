package topology

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/topograph/internal/core"
)

// Store is the live topology. Snapshots are immutable; every change swaps
// in a new one and notifies subscribers. All methods are safe for
// concurrent use.
type Store struct {
	path   string
	logger *zap.Logger

	mu      sync.Mutex
	graph   *core.Graph
	saved   map[core.NodeID]core.Point // Positions as last written or loaded
	written []byte
	subs    map[int]func(*core.Graph)
	nextSub int
	newID   func() core.EdgeID
}

// NewStore creates a store backed by path. An empty path keeps the store in
// memory only.
func NewStore(doc *Document, path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		path:   path,
		logger: logger,
		subs:   make(map[int]func(*core.Graph)),
		newID:  func() core.EdgeID { return core.EdgeID(uuid.NewString()) },
	}
	s.reset(doc.Graph())
	return s
}

// Open loads path into a new store.
func Open(path string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := NewStore(doc, path, logger)
	s.written = data
	for _, issue := range doc.Issues() {
		s.logger.Warn("topology issue", zap.String("path", path), zap.String("edge", string(issue.Edge)), zap.Error(issue.Err))
	}
	return s, nil
}

func (s *Store) reset(g *core.Graph) {
	s.graph = g
	s.saved = make(map[core.NodeID]core.Point, len(g.Nodes))
	for _, n := range g.Nodes {
		s.saved[n.ID] = n.Pos
	}
}

// Path returns the backing file, or "" for an in-memory store.
func (s *Store) Path() string { return s.path }

// Snapshot returns the current graph.
func (s *Store) Snapshot() *core.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph
}

// Subscribe registers fn to be called with each new snapshot. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(*core.Graph)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// MoveNode updates a node position in memory.
func (s *Store) MoveNode(id core.NodeID, pos core.Point) error {
	s.mu.Lock()
	g, err := s.withPosition(id, pos)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.graph = g
	s.mu.Unlock()

	s.publish(g)
	return nil
}

// Persist moves a node and writes the document. It returns the position
// the node had on disk before the call.
func (s *Store) Persist(id core.NodeID, pos core.Point) (core.Point, error) {
	s.mu.Lock()
	g, err := s.withPosition(id, pos)
	if err != nil {
		s.mu.Unlock()
		return core.Point{}, err
	}
	prev := s.saved[id]
	s.graph = g
	if prev == pos {
		s.mu.Unlock()
		s.publish(g)
		return prev, nil
	}
	s.saved[id] = pos
	err = s.writeLocked()
	s.mu.Unlock()

	s.publish(g)
	if err != nil {
		return prev, err
	}
	s.logger.Info("node persisted", zap.String("node", string(id)), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	return prev, nil
}

// Connect creates an edge between two anchors of different nodes and
// writes the document.
func (s *Store) Connect(source, target core.AnchorRef, relation string) (core.Edge, error) {
	if source.NodeID == target.NodeID {
		return core.Edge{}, fmt.Errorf("%w: %s", ErrSelfConnection, source.NodeID)
	}
	e := core.Edge{
		Source:       source.NodeID,
		Target:       target.NodeID,
		SourceAnchor: source.Side,
		TargetAnchor: target.Side,
		Relation:     relation,
	}

	s.mu.Lock()
	e.ID = s.newID()
	s.mu.Unlock()

	if err := s.AddEdge(e); err != nil {
		return core.Edge{}, err
	}
	return e, nil
}

// AddEdge inserts e and writes the document.
func (s *Store) AddEdge(e core.Edge) error {
	s.mu.Lock()
	if e.Source == e.Target {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSelfConnection, e.Source)
	}
	for _, id := range []core.NodeID{e.Source, e.Target} {
		if !s.graph.Has(id) {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	for _, existing := range s.graph.Edges {
		if existing.ID == e.ID {
			s.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrDuplicateEdge, e.ID)
		}
	}
	edges := append(append([]core.Edge(nil), s.graph.Edges...), e)
	g := core.NewGraph(s.graph.Nodes, edges)
	s.graph = g
	err := s.writeLocked()
	s.mu.Unlock()

	s.publish(g)
	if err != nil {
		return err
	}
	s.logger.Info("edge created",
		zap.String("edge", string(e.ID)),
		zap.String("source", string(e.Source)),
		zap.String("target", string(e.Target)),
	)
	return nil
}

// RemoveEdge deletes an edge and writes the document.
func (s *Store) RemoveEdge(id core.EdgeID) error {
	s.mu.Lock()
	edges := make([]core.Edge, 0, len(s.graph.Edges))
	for _, e := range s.graph.Edges {
		if e.ID != id {
			edges = append(edges, e)
		}
	}
	if len(edges) == len(s.graph.Edges) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownEdge, id)
	}
	g := core.NewGraph(s.graph.Nodes, edges)
	s.graph = g
	err := s.writeLocked()
	s.mu.Unlock()

	s.publish(g)
	return err
}

// Replace swaps in a freshly loaded document.
func (s *Store) Replace(doc *Document) {
	g := doc.Graph()
	s.mu.Lock()
	s.reset(g)
	s.mu.Unlock()

	s.publish(g)
}

// Reload reads the backing file and replaces the store contents. It reports
// false when the file is unchanged since the store last wrote or read it.
func (s *Store) Reload() (bool, error) {
	if s.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read topology: %w", err)
	}

	s.mu.Lock()
	same := bytes.Equal(data, s.written)
	s.mu.Unlock()
	if same {
		return false, nil
	}

	doc, err := Parse(data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", s.path, err)
	}
	s.mu.Lock()
	s.written = data
	s.mu.Unlock()

	s.Replace(doc)
	s.logger.Info("topology reloaded",
		zap.String("path", s.path),
		zap.Int("nodes", len(doc.Nodes)),
		zap.Int("edges", len(doc.Edges)),
	)
	return true, nil
}

func (s *Store) withPosition(id core.NodeID, pos core.Point) (*core.Graph, error) {
	if !s.graph.Has(id) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	nodes := append([]core.Node(nil), s.graph.Nodes...)
	for i := range nodes {
		if nodes[i].ID == id {
			nodes[i].Pos = pos
		}
	}
	return core.NewGraph(nodes, s.graph.Edges), nil
}

// writeLocked saves the graph with every node at its persisted position, so
// a node that is mid-drag is not written early.
func (s *Store) writeLocked() error {
	if s.path == "" {
		return nil
	}
	nodes := append([]core.Node(nil), s.graph.Nodes...)
	for i := range nodes {
		if p, ok := s.saved[nodes[i].ID]; ok {
			nodes[i].Pos = p
		}
	}
	data, err := FromGraph(core.NewGraph(nodes, s.graph.Edges)).Encode()
	if err != nil {
		return err
	}
	if err := writeFile(s.path, data); err != nil {
		s.logger.Error("write topology failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.written = data
	return nil
}

func (s *Store) publish(g *core.Graph) {
	s.mu.Lock()
	subs := make([]func(*core.Graph), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(g)
	}
}
