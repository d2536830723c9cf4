package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/vlisp/pkg/graph"
)

func TestPaletteOrder(t *testing.T) {
	var kinds []graph.Kind
	for _, s := range Palette() {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []graph.Kind{Variable, Constant, Add, Subtract, Multiply, IntegerDivide, Modulo}, kinds)
}

func TestPaletteIsACopy(t *testing.T) {
	p := Palette()
	p[0].Label = "changed"
	s, err := Lookup(Variable)
	require.NoError(t, err)
	assert.Equal(t, "var", s.Label)
}

func TestLookup(t *testing.T) {
	s, err := Lookup(Constant)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Inputs)
	assert.Equal(t, 1, s.Outputs)
	assert.False(t, s.Binop())

	s, err = Lookup(Modulo)
	require.NoError(t, err)
	assert.True(t, s.Binop())

	_, err = Lookup("exponent")
	assert.Error(t, err)
}

func TestEndpoints(t *testing.T) {
	s, _ := Lookup(Add)
	var ids []string
	for _, e := range s.Endpoints(3) {
		ids = append(ids, e.String())
	}
	assert.Equal(t, []string{"input_3_0", "input_3_1", "output_3_0"}, ids)

	v, _ := Lookup(Variable)
	assert.Len(t, v.Endpoints(0), 2)
}

func TestHasEndpoint(t *testing.T) {
	s, _ := Lookup(Constant)
	assert.True(t, s.HasEndpoint(graph.Endpoint{Direction: graph.Output, Slot: 0}))
	assert.False(t, s.HasEndpoint(graph.Endpoint{Direction: graph.Input, Slot: 0}))
	assert.False(t, s.HasEndpoint(graph.Endpoint{Direction: graph.Output, Slot: 1}))
}
