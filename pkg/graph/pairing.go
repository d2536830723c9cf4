package graph

import "fmt"

// ClickOutcome reports what a connector click did to the graph.
type ClickOutcome int

const (
	// OutcomeStarted means a new pending edge was opened.
	OutcomeStarted ClickOutcome = iota
	// OutcomeCommitted means the pending edge received its second endpoint.
	OutcomeCommitted
	// OutcomeIgnored means the pending edge already has an endpoint of the
	// clicked direction and is awaiting the opposite one. Nothing changed.
	OutcomeIgnored
	// OutcomeRejected means the identifier was malformed, had the wrong
	// direction, or named an unknown node. Nothing changed.
	OutcomeRejected
)

func (o ClickOutcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeCommitted:
		return "committed"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeRejected:
		return "rejected"
	default:
		return fmt.Sprintf("ClickOutcome(%d)", int(o))
	}
}

// OutputClicked feeds a click on an output connector into the pairing
// engine.
func (g *Graph) OutputClicked(endpointID string) ClickOutcome {
	return g.click(Output, endpointID)
}

// InputClicked feeds a click on an input connector into the pairing engine.
func (g *Graph) InputClicked(endpointID string) ClickOutcome {
	return g.click(Input, endpointID)
}

// click applies one connector click. With no pending edge the click opens
// one; a click of the opposite direction commits it; a second click of the
// same direction is dropped.
func (g *Graph) click(d Direction, endpointID string) ClickOutcome {
	ep, err := ParseEndpoint(endpointID)
	if err != nil || ep.Direction != d || !g.HasNode(ep.Node) {
		return OutcomeRejected
	}

	if g.pending == nil {
		e := &Edge{}
		*e.side(d) = &ep
		g.pending = e
		return OutcomeStarted
	}

	side := g.pending.side(d)
	if *side != nil {
		return OutcomeIgnored
	}
	*side = &ep
	g.edges = append(g.edges, *g.pending)
	g.pending = nil
	return OutcomeCommitted
}
