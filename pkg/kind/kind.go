// Package kind catalogues the node kinds the palette offers and the
// connector slots each kind exposes.
package kind

import (
	"fmt"

	"github.com/chazu/vlisp/pkg/graph"
)

// Node kinds offered by the palette.
const (
	Variable      graph.Kind = "variable"
	Constant      graph.Kind = "constant"
	Add           graph.Kind = "add"
	Subtract      graph.Kind = "subtract"
	Multiply      graph.Kind = "multiply"
	IntegerDivide graph.Kind = "integer-divide"
	Modulo        graph.Kind = "modulo"
)

// Field names edited by the kind widgets.
const (
	FieldName  = "name"
	FieldValue = "value"
)

// Spec describes a node kind.
type Spec struct {
	Kind    graph.Kind `json:"kind"`
	Label   string     `json:"label"`
	Inputs  int        `json:"inputs"`
	Outputs int        `json:"outputs"`
	Fields  []string   `json:"fields,omitempty"`
}

// Binop reports whether the kind is a binary operator.
func (s Spec) Binop() bool {
	return s.Inputs == 2
}

// Endpoints lists the connector identifiers a frame of this kind exposes.
func (s Spec) Endpoints(id graph.NodeID) []graph.Endpoint {
	eps := make([]graph.Endpoint, 0, s.Inputs+s.Outputs)
	for i := 0; i < s.Inputs; i++ {
		eps = append(eps, graph.Endpoint{Direction: graph.Input, Node: id, Slot: i})
	}
	for i := 0; i < s.Outputs; i++ {
		eps = append(eps, graph.Endpoint{Direction: graph.Output, Node: id, Slot: i})
	}
	return eps
}

// HasEndpoint reports whether a frame of this kind has the given connector.
func (s Spec) HasEndpoint(e graph.Endpoint) bool {
	if e.Slot < 0 {
		return false
	}
	if e.Direction == graph.Input {
		return e.Slot < s.Inputs
	}
	return e.Slot < s.Outputs
}

var palette = []Spec{
	{Kind: Variable, Label: "var", Inputs: 1, Outputs: 1, Fields: []string{FieldName, FieldValue}},
	{Kind: Constant, Label: "const", Inputs: 0, Outputs: 1, Fields: []string{FieldValue}},
	{Kind: Add, Label: "add", Inputs: 2, Outputs: 1},
	{Kind: Subtract, Label: "subtract", Inputs: 2, Outputs: 1},
	{Kind: Multiply, Label: "multiply", Inputs: 2, Outputs: 1},
	{Kind: IntegerDivide, Label: "Integer Divide", Inputs: 2, Outputs: 1},
	{Kind: Modulo, Label: "Modulo", Inputs: 2, Outputs: 1},
}

// Palette returns the kinds in the order the palette shows them.
func Palette() []Spec {
	out := make([]Spec, len(palette))
	copy(out, palette)
	return out
}

// Lookup returns the spec of a kind.
func Lookup(k graph.Kind) (Spec, error) {
	for _, s := range palette {
		if s.Kind == k {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("unknown node kind %q", k)
}
