package geometry

// Corner indexes into OrderedCorners.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// OrderedCorners holds four points in top-left, top-right, bottom-right,
// bottom-left order.
type OrderedCorners [4]Point

// TL returns the top-left corner.
func (c OrderedCorners) TL() Point { return c[TopLeft] }

// TR returns the top-right corner.
func (c OrderedCorners) TR() Point { return c[TopRight] }

// BR returns the bottom-right corner.
func (c OrderedCorners) BR() Point { return c[BottomRight] }

// BL returns the bottom-left corner.
func (c OrderedCorners) BL() Point { return c[BottomLeft] }

// Polygon returns the corners as a clockwise polygon starting at top-left.
func (c OrderedCorners) Polygon() Polygon {
	return Polygon{c[0], c[1], c[2], c[3]}
}

// OrderCorners arranges four points into canonical corner order.
//
// The top-left corner has the smallest x+y and the bottom-right the largest;
// the top-right corner has the smallest y-x and the bottom-left the largest.
// Ties go to the earliest input index. The same input point may fill more
// than one slot when the quadrilateral is strongly rotated (close to 45
// degrees); callers that need four distinct corners must check for that.
func OrderCorners(pts [4]Point) OrderedCorners {
	minSum, maxSum, minDiff, maxDiff := 0, 0, 0, 0
	for i := 1; i < 4; i++ {
		s := pts[i].X + pts[i].Y
		d := pts[i].Y - pts[i].X
		if s < pts[minSum].X+pts[minSum].Y {
			minSum = i
		}
		if s > pts[maxSum].X+pts[maxSum].Y {
			maxSum = i
		}
		if d < pts[minDiff].Y-pts[minDiff].X {
			minDiff = i
		}
		if d > pts[maxDiff].Y-pts[maxDiff].X {
			maxDiff = i
		}
	}

	return OrderedCorners{
		TopLeft:     pts[minSum],
		TopRight:    pts[minDiff],
		BottomRight: pts[maxSum],
		BottomLeft:  pts[maxDiff],
	}
}

// QuadFromPolygon converts a four-vertex polygon into the fixed-size array
// expected by OrderCorners. ok is false when p does not have exactly four
// vertices.
func QuadFromPolygon(p Polygon) (q [4]Point, ok bool) {
	if len(p) != 4 {
		return q, false
	}
	copy(q[:], p)
	return q, true
}
