package graph

import "fmt"

// Propagate flags every edge, committed or pending, that has an endpoint on
// the given node. It returns the number of edges flagged.
func (g *Graph) Propagate(id NodeID) int {
	n := 0
	for i := range g.edges {
		if g.edges[i].Touches(id) {
			g.edges[i].NeedsUpdate = true
			n++
		}
	}
	if g.pending != nil && g.pending.Touches(id) {
		g.pending.NeedsUpdate = true
		n++
	}
	return n
}

// Acknowledge clears the update flag on one committed edge after its
// geometry has been recomputed. Flags are only ever cleared one edge at a
// time, by whoever recomputed that edge.
func (g *Graph) Acknowledge(id EdgeID) error {
	if id < 0 || int(id) >= len(g.edges) {
		return fmt.Errorf("edge %d: %w", id, ErrUnknownEdge)
	}
	g.edges[id].NeedsUpdate = false
	return nil
}

// Stale returns the ids of committed edges whose geometry must be
// recomputed, in commit order.
func (g *Graph) Stale() []EdgeID {
	var ids []EdgeID
	for i, e := range g.edges {
		if e.Stale() {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}
