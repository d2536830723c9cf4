// Package route walks a graph's committed edges and produces their elbow
// geometry through a layout. Refresh is the consumer side of invalidation:
// it recomputes stale edges and acknowledges each one it recomputed.
package route

import (
	"errors"
	"fmt"

	"github.com/chazu/vlisp/pkg/geometry"
	"github.com/chazu/vlisp/pkg/graph"
	"github.com/chazu/vlisp/pkg/layout"
)

// Compute resolves the geometry of one committed edge.
func Compute(e graph.Edge, l layout.Layout) (geometry.Route, error) {
	if !e.Committed() {
		return geometry.Route{}, errors.New("route: edge is not committed")
	}
	outPoint, outFrame, err := l.Rects(*e.Output)
	if err != nil {
		return geometry.Route{}, fmt.Errorf("route: output: %w", err)
	}
	inPoint, inFrame, err := l.Rects(*e.Input)
	if err != nil {
		return geometry.Route{}, fmt.Errorf("route: input: %w", err)
	}
	return geometry.Resolve(outPoint, outFrame, inPoint, inFrame), nil
}

// All computes routes for every committed edge without touching update
// flags. Use it for the first render and after loading a snapshot.
func All(g *graph.Graph, l layout.Layout) (map[graph.EdgeID]geometry.Route, error) {
	routes := make(map[graph.EdgeID]geometry.Route)
	var errs []error
	for i, e := range g.Committed() {
		r, err := Compute(e, l)
		if err != nil {
			errs = append(errs, fmt.Errorf("edge %d: %w", i, err))
			continue
		}
		routes[graph.EdgeID(i)] = r
	}
	return routes, errors.Join(errs...)
}

// Refresh recomputes every stale committed edge and acknowledges it. An edge
// whose rectangles cannot be resolved stays stale; its error is joined into
// the returned error and the remaining edges are still processed.
func Refresh(g *graph.Graph, l layout.Layout) (map[graph.EdgeID]geometry.Route, error) {
	routes := make(map[graph.EdgeID]geometry.Route)
	var errs []error
	for _, id := range g.Stale() {
		e, _ := g.Edge(id)
		r, err := Compute(e, l)
		if err != nil {
			errs = append(errs, fmt.Errorf("edge %d: %w", id, err))
			continue
		}
		if err := g.Acknowledge(id); err != nil {
			errs = append(errs, err)
			continue
		}
		routes[id] = r
	}
	return routes, errors.Join(errs...)
}
