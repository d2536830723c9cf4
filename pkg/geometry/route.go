package geometry

// BorderWidth is the routing margin between an edge and the frames it joins.
const BorderWidth = 4

// centerPad lengthens the middle stub so it overlaps both end stubs.
const centerPad = 5

// Align positions a vertical stub at one end of an elbow edge.
type Align string

const (
	FlexStart Align = "flex-start"
	FlexEnd   Align = "flex-end"
)

// Route is the renderable elbow geometry of one committed edge. It is derived
// state: recompute it whenever the edge goes stale.
type Route struct {
	Top          float64 `json:"top"`
	Left         float64 `json:"left"`
	Height       float64 `json:"height"`
	Width        float64 `json:"width"`
	StartAlign   Align   `json:"startAlign"`
	EndAlign     Align   `json:"endAlign"`
	CenterHeight float64 `json:"centerHeight"`
}

// Resolve computes the elbow route from an output connector to an input
// connector. outPoint and inPoint are the connector rectangles; outFrame and
// inFrame are the rectangles of the frames that own them.
//
// The frame lower on screen (larger Top) anchors the vertical extent: the
// edge spans from just above the anchor frame's top up past the other frame's
// bottom. Horizontally it runs from the output connector's right edge to the
// input connector's left edge; overlapping frames give a zero or negative
// width, which is returned as is.
//
// Resolve is pure and never fails.
func Resolve(outPoint, outFrame, inPoint, inFrame Rect) Route {
	outLower := outFrame.Top > inFrame.Top
	anchor, other := inFrame, outFrame
	if outLower {
		anchor, other = outFrame, inFrame
	}

	height := anchor.Top - other.Bottom + BorderWidth + outPoint.Height/2
	left := outPoint.Right

	r := Route{
		Top:          anchor.Top - height,
		Left:         left,
		Height:       height + inPoint.Height/2,
		Width:        inPoint.Left - left,
		CenterHeight: height + centerPad,
		StartAlign:   FlexStart,
		EndAlign:     FlexEnd,
	}
	if outLower {
		r.StartAlign, r.EndAlign = FlexEnd, FlexStart
	}
	return r
}
