package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	g := New()
	g.PlaceNode(Position{Top: 100, Left: 50}, "variable")
	g.PlaceNode(Position{Top: 300, Left: 50}, "constant")
	g.PlaceNode(Position{Top: 500, Left: 80}, "add")
	require.NoError(t, g.SetField(0, "name", "x"))
	wire(t, g, "output_1_0", "input_2_0")
	wire(t, g, "output_2_0", "input_0_0")
	require.NoError(t, g.MoveNode(1, Position{Top: 310, Left: 55}))
	require.Equal(t, OutcomeStarted, g.OutputClicked("output_0_0"))

	s := g.Snapshot()
	require.Len(t, s.Nodes, 3)
	require.Len(t, s.Edges, 3)
	assert.Equal(t, EdgeRecord{Output: "output_1_0", Input: "input_2_0", NeedsUpdate: true}, s.Edges[0])
	assert.Equal(t, EdgeRecord{Output: "output_0_0"}, s.Edges[2])

	loaded, err := FromSnapshot(s)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), loaded.Nodes())
	assert.Equal(t, g.Edges(), loaded.Edges())
	assert.Equal(t, []EdgeID{0}, loaded.Stale())

	// The restored pending edge keeps pairing.
	assert.Equal(t, OutcomeCommitted, loaded.InputClicked("input_2_1"))
	// New placements continue the id sequence.
	assert.Equal(t, NodeID(3), loaded.PlaceNode(Position{}, "modulo").ID)
}

func TestSnapshotJSONShape(t *testing.T) {
	g := New()
	g.PlaceNode(Position{Top: 100, Left: 50}, "variable")
	g.PlaceNode(Position{Top: 300, Left: 50}, "variable")
	wire(t, g, "output_0_0", "input_1_0")

	data, err := json.Marshal(g.Snapshot())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [
			{"id": 0, "kind": "variable", "position": {"top": 100, "left": 50}},
			{"id": 1, "kind": "variable", "position": {"top": 300, "left": 50}}
		],
		"edges": [
			{"outputId": "output_0_0", "inputId": "input_1_0"}
		]
	}`, string(data))
}

func TestEmptySnapshot(t *testing.T) {
	s := New().Snapshot()
	assert.NotNil(t, s.Nodes)
	assert.NotNil(t, s.Edges)

	g, err := FromSnapshot(Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NodeCount())
}

func TestFromSnapshotRefusesInvalid(t *testing.T) {
	s := Snapshot{
		Nodes: []NodeFrame{{ID: 0, Kind: "add"}},
		Edges: []EdgeRecord{{Output: "output_0_0", Input: "input_4_0"}},
	}
	_, err := FromSnapshot(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-existent node 4")
}
