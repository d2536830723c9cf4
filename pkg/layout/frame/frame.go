// Package frame implements layout.Layout for fixed-size node frames.
// Every frame is a Width×Height box at its node's position. Connectors are
// square; inputs sit on the frame's left edge and outputs at 90% of its
// width, one row per slot below the frame header.
package frame

import (
	"fmt"

	"github.com/chazu/vlisp/pkg/geometry"
	"github.com/chazu/vlisp/pkg/graph"
	"github.com/chazu/vlisp/pkg/layout"
)

// Compile-time interface check.
var _ layout.Layout = (*Layout)(nil)

// Default dimensions, in canvas units.
const (
	DefaultWidth         = 200
	DefaultHeight        = 100
	DefaultConnectorSize = 16
	DefaultHeader        = 60
)

// outputOffset is the fraction of the frame width where outputs sit.
const outputOffset = 0.9

// Board is the read side of a graph the layout needs.
type Board interface {
	Node(id graph.NodeID) (graph.NodeFrame, bool)
	Nodes() []graph.NodeFrame
}

// Layout measures connectors of fixed-size frames.
type Layout struct {
	board         Board
	Width         float64
	Height        float64
	ConnectorSize float64
	Header        float64
}

// New returns a Layout over b with default dimensions.
func New(b Board) *Layout {
	return &Layout{
		board:         b,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		ConnectorSize: DefaultConnectorSize,
		Header:        DefaultHeader,
	}
}

// Frame returns the rectangle of a placed node.
func (l *Layout) Frame(n graph.NodeFrame) geometry.Rect {
	return geometry.NewRect(n.Position.Top, n.Position.Left, l.Width, l.Height)
}

// Rects implements layout.Layout.
func (l *Layout) Rects(e graph.Endpoint) (geometry.Rect, geometry.Rect, error) {
	n, ok := l.board.Node(e.Node)
	if !ok {
		return geometry.Rect{}, geometry.Rect{}, fmt.Errorf("%s: %w", e, layout.ErrNotRendered)
	}
	frame := l.Frame(n)

	top := frame.Top + l.Header + float64(e.Slot)*l.ConnectorSize
	left := frame.Left
	if e.Direction == graph.Output {
		left = frame.Left + frame.Width*outputOffset
	}
	return geometry.NewRect(top, left, l.ConnectorSize, l.ConnectorSize), frame, nil
}

// NodeAt returns the frame under the canvas point (left, top). Frames placed
// later are drawn on top, so the last containing frame wins.
func (l *Layout) NodeAt(left, top float64) (graph.NodeID, bool) {
	nodes := l.board.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if l.Frame(nodes[i]).Contains(left, top) {
			return nodes[i].ID, true
		}
	}
	return 0, false
}

// Bounds returns the rectangle covering every placed frame, or false for an
// empty board.
func (l *Layout) Bounds() (geometry.Rect, bool) {
	nodes := l.board.Nodes()
	if len(nodes) == 0 {
		return geometry.Rect{}, false
	}
	b := l.Frame(nodes[0])
	for _, n := range nodes[1:] {
		b = b.Union(l.Frame(n))
	}
	return b, true
}
