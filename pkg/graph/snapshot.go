package graph

import (
	"errors"
	"fmt"
)

// EdgeRecord is the serialized form of an edge. An unset side is the empty
// string.
type EdgeRecord struct {
	Output      string `json:"outputId,omitempty"`
	Input       string `json:"inputId,omitempty"`
	NeedsUpdate bool   `json:"needsUpdate,omitempty"`
}

// Snapshot is the full board state exchanged with the host process.
type Snapshot struct {
	Nodes []NodeFrame  `json:"nodes"`
	Edges []EdgeRecord `json:"edges"`
}

func recordOf(e Edge) EdgeRecord {
	var r EdgeRecord
	if e.Output != nil {
		r.Output = e.Output.String()
	}
	if e.Input != nil {
		r.Input = e.Input.String()
	}
	r.NeedsUpdate = e.NeedsUpdate
	return r
}

// Snapshot captures the graph. Edges are listed committed first, in commit
// order, with the pending edge last.
func (g *Graph) Snapshot() Snapshot {
	s := Snapshot{
		Nodes: g.Nodes(),
		Edges: make([]EdgeRecord, 0, len(g.edges)+1),
	}
	for _, e := range g.Edges() {
		s.Edges = append(s.Edges, recordOf(e))
	}
	return s
}

// FromSnapshot rebuilds a graph id-for-id from a snapshot. Snapshots with
// error-severity validation findings are refused.
func FromSnapshot(s Snapshot) (*Graph, error) {
	var errs []error
	for _, v := range Validate(s) {
		if v.Severity == SeverityError {
			errs = append(errs, v)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("load snapshot: %w", errors.Join(errs...))
	}

	g := New()
	for _, n := range s.Nodes {
		g.nodes = append(g.nodes, n.clone())
	}
	for _, r := range s.Edges {
		e, err := edgeOf(r)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		if e.Committed() {
			g.edges = append(g.edges, e)
		} else {
			g.pending = &e
		}
	}
	return g, nil
}

func edgeOf(r EdgeRecord) (Edge, error) {
	e := Edge{NeedsUpdate: r.NeedsUpdate}
	if r.Output != "" {
		ep, err := ParseEndpoint(r.Output)
		if err != nil {
			return Edge{}, err
		}
		e.Output = &ep
	}
	if r.Input != "" {
		ep, err := ParseEndpoint(r.Input)
		if err != nil {
			return Edge{}, err
		}
		e.Input = &ep
	}
	return e, nil
}
