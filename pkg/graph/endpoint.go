package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedEndpoint is returned when a connector identifier does not have
// the {direction}_{node}_{slot} form.
var ErrMalformedEndpoint = errors.New("malformed endpoint identifier")

// Direction says whether a connector consumes or produces a value.
type Direction int

const (
	Input  Direction = iota // left-hand connector, receives a value
	Output                  // right-hand connector, emits a value
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Opposite returns the direction an edge needs on its other end.
func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

// Endpoint is a structured connector identifier.
type Endpoint struct {
	Direction Direction
	Node      NodeID
	Slot      int
}

// String formats the endpoint as the identifier carried by rendered
// connectors, e.g. "input_3_0".
func (e Endpoint) String() string {
	return fmt.Sprintf("%s_%d_%d", e.Direction, e.Node, e.Slot)
}

// ParseEndpoint parses an identifier produced by Endpoint.String.
func ParseEndpoint(s string) (Endpoint, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrMalformedEndpoint, s)
	}

	var e Endpoint
	switch parts[0] {
	case "input":
		e.Direction = Input
	case "output":
		e.Direction = Output
	default:
		return Endpoint{}, fmt.Errorf("%w: %q: unknown direction %q", ErrMalformedEndpoint, s, parts[0])
	}

	node, err := strconv.Atoi(parts[1])
	if err != nil || node < 0 {
		return Endpoint{}, fmt.Errorf("%w: %q: bad node id", ErrMalformedEndpoint, s)
	}
	slot, err := strconv.Atoi(parts[2])
	if err != nil || slot < 0 {
		return Endpoint{}, fmt.Errorf("%w: %q: bad slot", ErrMalformedEndpoint, s)
	}
	e.Node = NodeID(node)
	e.Slot = slot
	if e.String() != s {
		return Endpoint{}, fmt.Errorf("%w: %q: not in canonical form", ErrMalformedEndpoint, s)
	}
	return e, nil
}
