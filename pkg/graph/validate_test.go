package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// hasFinding reports whether any finding of the given severity mentions substr.
func hasFinding(errs []ValidationError, sev ValidationSeverity, substr string) bool {
	for _, e := range errs {
		if e.Severity == sev && strings.Contains(e.Error(), substr) {
			return true
		}
	}
	return false
}

func nodes(kinds ...Kind) []NodeFrame {
	out := make([]NodeFrame, len(kinds))
	for i, k := range kinds {
		out[i] = NodeFrame{ID: NodeID(i), Kind: k}
	}
	return out
}

func TestValidateCleanSnapshot(t *testing.T) {
	s := Snapshot{
		Nodes: nodes("constant", "variable", "add"),
		Edges: []EdgeRecord{
			{Output: "output_0_0", Input: "input_2_0"},
			{Output: "output_1_0", Input: "input_2_1"},
			{Input: "input_1_0"},
		},
	}
	assert.Empty(t, Validate(s))
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name     string
		snapshot Snapshot
		severity ValidationSeverity
		substr   string
	}{
		{
			name:     "id gap",
			snapshot: Snapshot{Nodes: []NodeFrame{{ID: 0, Kind: "add"}, {ID: 2, Kind: "add"}}},
			severity: SeverityError,
			substr:   "node 2: found at position 1",
		},
		{
			name:     "missing kind",
			snapshot: Snapshot{Nodes: []NodeFrame{{ID: 0}}},
			severity: SeverityWarning,
			substr:   "has no kind",
		},
		{
			name:     "empty edge",
			snapshot: Snapshot{Nodes: nodes("add"), Edges: []EdgeRecord{{}}},
			severity: SeverityError,
			substr:   "has no endpoints",
		},
		{
			name: "partial edge not last",
			snapshot: Snapshot{Nodes: nodes("add", "add"), Edges: []EdgeRecord{
				{Output: "output_0_0"},
				{Output: "output_0_0", Input: "input_1_0"},
			}},
			severity: SeverityError,
			substr:   "edge 0: partial edge is not the last edge",
		},
		{
			name:     "malformed endpoint",
			snapshot: Snapshot{Nodes: nodes("add"), Edges: []EdgeRecord{{Output: "out_0"}}},
			severity: SeverityError,
			substr:   "malformed endpoint",
		},
		{
			name:     "swapped directions",
			snapshot: Snapshot{Nodes: nodes("add", "add"), Edges: []EdgeRecord{{Output: "input_0_0", Input: "output_1_0"}}},
			severity: SeverityError,
			substr:   "output side holds input endpoint",
		},
		{
			name:     "dangling node",
			snapshot: Snapshot{Nodes: nodes("add"), Edges: []EdgeRecord{{Output: "output_0_0", Input: "input_3_0"}}},
			severity: SeverityError,
			substr:   "non-existent node 3",
		},
		{
			name:     "self loop",
			snapshot: Snapshot{Nodes: nodes("add"), Edges: []EdgeRecord{{Output: "output_0_0", Input: "input_0_1"}}},
			severity: SeverityWarning,
			substr:   "connects node 0 to itself",
		},
		{
			name: "duplicate",
			snapshot: Snapshot{Nodes: nodes("add", "add"), Edges: []EdgeRecord{
				{Output: "output_0_0", Input: "input_1_0"},
				{Output: "output_0_0", Input: "input_1_0"},
			}},
			severity: SeverityWarning,
			substr:   "duplicates edge 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.snapshot)
			assert.True(t, hasFinding(errs, tt.severity, tt.substr), "findings: %v", errs)
		})
	}
}

func TestWarningsDoNotBlockLoad(t *testing.T) {
	s := Snapshot{
		Nodes: nodes("add"),
		Edges: []EdgeRecord{{Output: "output_0_0", Input: "input_0_1"}},
	}
	g, err := FromSnapshot(s)
	assert.NoError(t, err)
	assert.Len(t, g.Committed(), 1)
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Message: "boom", Severity: SeverityError}
	assert.Equal(t, "[error] boom", e.Error())
	e = ValidationError{Subject: "edge 1", Message: "boom", Severity: SeverityWarning}
	assert.Equal(t, "[warning] edge 1: boom", e.Error())
	assert.Equal(t, "ValidationSeverity(7)", ValidationSeverity(7).String())
}
