// Package geometry resolves the on-screen routing of connector edges.
// Rectangles use screen coordinates: Top grows downward, Left grows to the
// right.
package geometry

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Rect is an axis-aligned screen rectangle as reported by a layout facility.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewRect builds a Rect from its top-left corner and size.
func NewRect(top, left, width, height float64) Rect {
	return Rect{
		Top:    top,
		Left:   left,
		Width:  width,
		Height: height,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Box converts the rectangle to an sdfx box with X along Left and Y along Top.
func (r Rect) Box() sdf.Box2 {
	return sdf.Box2{
		Min: v2.Vec{X: r.Left, Y: r.Top},
		Max: v2.Vec{X: r.Right, Y: r.Bottom},
	}
}

// RectFromBox converts an sdfx box back to a Rect.
func RectFromBox(b sdf.Box2) Rect {
	return NewRect(b.Min.Y, b.Min.X, b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
}

// Contains reports whether the point (left, top) lies inside r, edges
// included.
func (r Rect) Contains(left, top float64) bool {
	return r.Box().Contains(v2.Vec{X: left, Y: top})
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return RectFromBox(r.Box().Extend(o.Box()))
}
