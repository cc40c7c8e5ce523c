package geometry

import (
	"fmt"
	"image"
	"math"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// FromImagePoint converts an integer image.Point.
func FromImagePoint(p image.Point) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Polygon is an ordered vertex sequence describing a closed contour.
//
// Polygons produced by contour tracing contain one vertex per boundary pixel;
// simplified polygons contain only the retained corners.
type Polygon []Point

// BoundingBox returns the minimum and maximum coordinates of the polygon.
// An empty polygon returns two zero points.
func (p Polygon) BoundingBox() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, v := range p[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}
	return min, max
}

// BoundingWidth returns the width of the polygon's upright bounding rectangle
// measured in whole pixels, inclusive of both extreme columns. A polygon whose
// vertices all share one column is 1 pixel wide.
//
// This is the ranking proxy used during quadrilateral selection: it is cheap
// and identical for the inner and outer traces of the same one-pixel edge.
func (p Polygon) BoundingWidth() float64 {
	if len(p) == 0 {
		return 0
	}
	min, max := p.BoundingBox()
	return math.Floor(max.X) - math.Floor(min.X) + 1
}

// Area returns the absolute area enclosed by the polygon (shoelace formula).
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the summed edge length. When closed is true the edge from
// the last vertex back to the first is included.
func (p Polygon) Perimeter(closed bool) float64 {
	if len(p) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(p); i++ {
		total += Dist(p[i-1], p[i])
	}
	if closed {
		total += Dist(p[len(p)-1], p[0])
	}
	return total
}
