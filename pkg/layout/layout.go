// Package layout defines how connectors are measured on screen.
// The router asks a Layout for the rectangles of both ends of an edge and
// feeds them to the geometry resolver. Implementations (the fixed-size frame
// layout, or a frontend that reports measured DOM rectangles) live behind
// this interface.
package layout

import (
	"errors"
	"fmt"

	"github.com/chazu/vlisp/pkg/geometry"
	"github.com/chazu/vlisp/pkg/graph"
)

// ErrNotRendered is returned when a layout has no rectangle for an endpoint.
var ErrNotRendered = errors.New("endpoint not rendered")

// Layout reports where connectors are drawn.
type Layout interface {
	// Rects returns the rectangle of the connector and of the frame that
	// owns it.
	Rects(e graph.Endpoint) (point, frame geometry.Rect, err error)
}

// Measured is a Layout backed by rectangles reported by a renderer, keyed
// by endpoint identifier.
type Measured struct {
	Points map[string]geometry.Rect `json:"points"`
	Frames map[string]geometry.Rect `json:"frames"`
}

// Compile-time interface check.
var _ Layout = Measured{}

// Rects implements Layout.
func (m Measured) Rects(e graph.Endpoint) (geometry.Rect, geometry.Rect, error) {
	id := e.String()
	point, ok := m.Points[id]
	if !ok {
		return geometry.Rect{}, geometry.Rect{}, fmt.Errorf("%s: %w", id, ErrNotRendered)
	}
	frame, ok := m.Frames[id]
	if !ok {
		return geometry.Rect{}, geometry.Rect{}, fmt.Errorf("%s frame: %w", id, ErrNotRendered)
	}
	return point, frame, nil
}
