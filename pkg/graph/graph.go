package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when an operation names a node that was
	// never placed.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownEdge is returned when an EdgeID does not name a committed edge.
	ErrUnknownEdge = errors.New("unknown edge")
)

// Graph is the board: placed node frames plus the edges between their
// connectors. A Graph is owned by a single event loop and is not safe for
// concurrent use. Accessors return copies; callers never mutate graph state
// except through Graph methods.
type Graph struct {
	nodes   []NodeFrame
	edges   []Edge // committed, in commit order
	pending *Edge  // at most one partial edge
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// PlaceNode appends a new frame of the given kind at pos. The new frame's id
// is the number of frames placed before it.
func (g *Graph) PlaceNode(pos Position, kind Kind) NodeFrame {
	n := NodeFrame{
		ID:       NodeID(len(g.nodes)),
		Kind:     kind,
		Position: pos,
	}
	g.nodes = append(g.nodes, n)
	return n.clone()
}

// MoveNode updates the position of a placed frame and flags every edge
// touching it for a geometry update.
func (g *Graph) MoveNode(id NodeID, pos Position) error {
	n, err := g.frame(id)
	if err != nil {
		return err
	}
	n.Position = pos
	g.Propagate(id)
	return nil
}

// SetField records an editor field value (variable name, constant value,
// ...) on a frame. The graph does not interpret fields.
func (g *Graph) SetField(id NodeID, key, value string) error {
	n, err := g.frame(id)
	if err != nil {
		return err
	}
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[key] = value
	return nil
}

func (g *Graph) frame(id NodeID) (*NodeFrame, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return &g.nodes[id], nil
}

// HasNode reports whether id names a placed frame.
func (g *Graph) HasNode(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns a copy of the frame with the given id.
func (g *Graph) Node(id NodeID) (NodeFrame, bool) {
	if !g.HasNode(id) {
		return NodeFrame{}, false
	}
	return g.nodes[id].clone(), true
}

// Nodes returns copies of all frames in id order.
func (g *Graph) Nodes() []NodeFrame {
	nodes := make([]NodeFrame, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = n.clone()
	}
	return nodes
}

// NodeCount returns the number of placed frames.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Edges returns the committed edges in commit order followed by the pending
// partial edge, if there is one. Renderers must skip the partial edge.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges)+1)
	for _, e := range g.edges {
		edges = append(edges, e.clone())
	}
	if g.pending != nil {
		edges = append(edges, g.pending.clone())
	}
	return edges
}

// Committed returns the committed edges in commit order. The index of an
// edge in the result is its EdgeID.
func (g *Graph) Committed() []Edge {
	edges := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		edges[i] = e.clone()
	}
	return edges
}

// Edge returns a copy of the committed edge with the given id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	if id < 0 || int(id) >= len(g.edges) {
		return Edge{}, false
	}
	return g.edges[id].clone(), true
}

// Pending returns the partial edge awaiting its second endpoint.
func (g *Graph) Pending() (Edge, bool) {
	if g.pending == nil {
		return Edge{}, false
	}
	return g.pending.clone(), true
}
