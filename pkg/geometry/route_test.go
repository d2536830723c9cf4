package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	upperFrame = NewRect(100, 50, 200, 100)
	lowerFrame = NewRect(300, 400, 200, 100)
	outPoint   = NewRect(100, 234, 16, 16)
	inPoint    = NewRect(300, 400, 16, 16)
)

func TestResolveOutputAbove(t *testing.T) {
	r := Resolve(outPoint, upperFrame, inPoint, lowerFrame)

	// height = 300 - 200 + 4 + 16/2 = 112
	assert.Equal(t, Route{
		Top:          188,
		Left:         250,
		Height:       120,
		Width:        150,
		StartAlign:   FlexStart,
		EndAlign:     FlexEnd,
		CenterHeight: 117,
	}, r)
}

func TestResolveOutputBelow(t *testing.T) {
	r := Resolve(outPoint, lowerFrame, inPoint, upperFrame)

	assert.Equal(t, FlexEnd, r.StartAlign)
	assert.Equal(t, FlexStart, r.EndAlign)
	assert.Equal(t, 188.0, r.Top)
	assert.Equal(t, 120.0, r.Height)
}

func TestResolveSwapFlipsAlignOnly(t *testing.T) {
	a := Resolve(outPoint, upperFrame, inPoint, lowerFrame)
	b := Resolve(outPoint, lowerFrame, inPoint, upperFrame)

	assert.Equal(t, a.Height, b.Height)
	assert.Equal(t, a.Width, b.Width)
	assert.Equal(t, a.StartAlign, b.EndAlign)
	assert.Equal(t, a.EndAlign, b.StartAlign)
}

func TestResolveDeterministic(t *testing.T) {
	a := Resolve(outPoint, upperFrame, inPoint, lowerFrame)
	b := Resolve(outPoint, upperFrame, inPoint, lowerFrame)
	assert.Equal(t, a, b)
}

func TestResolveOverlappingFrames(t *testing.T) {
	in := NewRect(300, 100, 16, 16)
	r := Resolve(outPoint, upperFrame, in, lowerFrame)
	assert.Equal(t, -150.0, r.Width)
}

func TestResolveSameTop(t *testing.T) {
	a := NewRect(100, 0, 200, 100)
	b := NewRect(100, 300, 200, 100)
	r := Resolve(NewRect(100, 184, 16, 16), a, NewRect(100, 300, 16, 16), b)

	// height = 100 - 200 + 4 + 8 = -88
	assert.Equal(t, FlexStart, r.StartAlign)
	assert.Equal(t, -80.0, r.Height)
	assert.Equal(t, 188.0, r.Top)
}

func TestResolveMalformedRects(t *testing.T) {
	nan := Rect{Top: math.NaN(), Left: math.NaN(), Height: math.NaN(), Right: math.NaN(), Bottom: math.NaN()}
	assert.NotPanics(t, func() {
		r := Resolve(nan, nan, nan, nan)
		assert.True(t, math.IsNaN(r.Height))
	})
}
