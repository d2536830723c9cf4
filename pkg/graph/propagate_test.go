package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wire commits an edge between two endpoint ids.
func wire(t *testing.T, g *Graph, out, in string) {
	t.Helper()
	require.Equal(t, OutcomeStarted, g.OutputClicked(out))
	require.Equal(t, OutcomeCommitted, g.InputClicked(in))
}

func TestPropagateFlagsTouchingEdges(t *testing.T) {
	g := board(4)
	wire(t, g, "output_0_0", "input_1_0") // edge 0
	wire(t, g, "output_2_0", "input_3_0") // edge 1
	wire(t, g, "output_1_0", "input_2_1") // edge 2

	n := g.Propagate(1)
	assert.Equal(t, 2, n)

	edges := g.Committed()
	assert.True(t, edges[0].NeedsUpdate)
	assert.False(t, edges[1].NeedsUpdate)
	assert.True(t, edges[2].NeedsUpdate)
	assert.Equal(t, []EdgeID{0, 2}, g.Stale())
}

func TestPropagateDoesNotConfuseIDPrefixes(t *testing.T) {
	g := board(12)
	wire(t, g, "output_1_0", "input_2_0")
	wire(t, g, "output_11_0", "input_10_0")

	assert.Equal(t, 1, g.Propagate(1))
	assert.Equal(t, []EdgeID{0}, g.Stale())
}

func TestPropagateFlagsPendingEdge(t *testing.T) {
	g := board(2)
	require.Equal(t, OutcomeStarted, g.OutputClicked("output_0_0"))

	assert.Equal(t, 1, g.Propagate(0))
	p, ok := g.Pending()
	require.True(t, ok)
	assert.True(t, p.NeedsUpdate)
	assert.False(t, p.Stale(), "a partial edge is never stale")
	assert.Empty(t, g.Stale())
}

func TestFlagCarriesIntoCommit(t *testing.T) {
	g := board(2)
	require.Equal(t, OutcomeStarted, g.OutputClicked("output_0_0"))
	require.NoError(t, g.MoveNode(0, Position{Top: 40, Left: 40}))
	require.Equal(t, OutcomeCommitted, g.InputClicked("input_1_0"))

	e, ok := g.Edge(0)
	require.True(t, ok)
	assert.True(t, e.Stale(), "an edge whose node moved while pending still needs geometry")
	assert.Equal(t, []EdgeID{0}, g.Stale())

	g2 := board(2)
	wire(t, g2, "output_0_0", "input_1_0")
	assert.Empty(t, g2.Stale(), "a fresh commit with no moves is not stale")
}

func TestAcknowledgeClearsOnlyTarget(t *testing.T) {
	g := board(2)
	wire(t, g, "output_0_0", "input_1_0")
	wire(t, g, "output_0_0", "input_1_1")

	g.Propagate(0)
	require.Equal(t, []EdgeID{0, 1}, g.Stale())

	require.NoError(t, g.Acknowledge(1))
	assert.Equal(t, []EdgeID{0}, g.Stale())

	e0, _ := g.Edge(0)
	e1, _ := g.Edge(1)
	assert.True(t, e0.NeedsUpdate)
	assert.False(t, e1.NeedsUpdate)
}

func TestAcknowledgeUnknownEdge(t *testing.T) {
	g := board(1)
	assert.ErrorIs(t, g.Acknowledge(0), ErrUnknownEdge)
	assert.ErrorIs(t, g.Acknowledge(-1), ErrUnknownEdge)
}

func TestMoveCommittedEdgeScenario(t *testing.T) {
	g := New()
	g.PlaceNode(Position{Top: 100, Left: 50}, "variable")
	g.PlaceNode(Position{Top: 300, Left: 50}, "variable")
	wire(t, g, "output_0_0", "input_1_0")

	require.NoError(t, g.MoveNode(0, Position{Top: 120, Left: 60}))
	e, _ := g.Edge(0)
	assert.True(t, e.Stale())

	require.NoError(t, g.Acknowledge(0))
	e, _ = g.Edge(0)
	assert.False(t, e.NeedsUpdate)

	// Stays clear until the node moves again.
	require.NoError(t, g.MoveNode(1, Position{Top: 500, Left: 60}))
	e, _ = g.Edge(0)
	assert.True(t, e.NeedsUpdate)
}

func TestMoveUntouchedNodeLeavesEdges(t *testing.T) {
	g := board(3)
	wire(t, g, "output_0_0", "input_1_0")

	require.NoError(t, g.MoveNode(2, Position{Top: 1, Left: 1}))
	assert.Empty(t, g.Stale())
}
