package graph

// EdgeID identifies a committed edge by its position in commit order.
// Committed edges are never removed, so an EdgeID stays valid for the
// lifetime of the graph.
type EdgeID int

// Edge pairs one output connector with one input connector. An edge with
// only one side set is partial; with both sides set it is committed.
type Edge struct {
	Output      *Endpoint
	Input       *Endpoint
	NeedsUpdate bool
}

// Committed reports whether both endpoints are set.
func (e Edge) Committed() bool {
	return e.Output != nil && e.Input != nil
}

// Partial reports whether exactly one endpoint is set.
func (e Edge) Partial() bool {
	return (e.Output == nil) != (e.Input == nil)
}

// Stale reports whether the edge is committed and its cached geometry must
// be recomputed.
func (e Edge) Stale() bool {
	return e.Committed() && e.NeedsUpdate
}

// Touches reports whether either endpoint belongs to the given node.
func (e Edge) Touches(id NodeID) bool {
	return (e.Output != nil && e.Output.Node == id) || (e.Input != nil && e.Input.Node == id)
}

// side returns the endpoint slot for the given direction.
func (e *Edge) side(d Direction) **Endpoint {
	if d == Output {
		return &e.Output
	}
	return &e.Input
}

func (e Edge) clone() Edge {
	if e.Output != nil {
		out := *e.Output
		e.Output = &out
	}
	if e.Input != nil {
		in := *e.Input
		e.Input = &in
	}
	return e
}
