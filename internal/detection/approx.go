package detection

import (
	"math"

	"github.com/ironsheep/image-to-scan/internal/geometry"
)

// DefaultEpsilonFraction is the simplification tolerance as a fraction of the
// contour perimeter.
const DefaultEpsilonFraction = 0.02

// Simplify reduces a closed contour to the vertices needed to stay within
// epsilonFraction * perimeter of the original (Douglas-Peucker).
//
// The contour is split at its first vertex and the vertex farthest from it,
// and each half is simplified independently. The result preserves the input's
// winding direction and starts at the first vertex.
func Simplify(p geometry.Polygon, epsilonFraction float64) geometry.Polygon {
	n := len(p)
	if n < 3 {
		out := make(geometry.Polygon, n)
		copy(out, p)
		return out
	}

	epsilon := epsilonFraction * p.Perimeter(true)

	far := 0
	farDist := -1.0
	for i := 1; i < n; i++ {
		if d := geometry.Dist(p[0], p[i]); d > farDist {
			far, farDist = i, d
		}
	}

	// Walk the closed contour as an open chain 0..far..n (index n is vertex 0).
	keep := make([]bool, n+1)
	keep[0], keep[far], keep[n] = true, true, true
	at := func(i int) geometry.Point { return p[i%n] }
	simplifyRange(at, 0, far, epsilon, keep)
	simplifyRange(at, far, n, epsilon, keep)

	out := make(geometry.Polygon, 0, 8)
	for i := 0; i < n; i++ {
		if keep[i] {
			out = append(out, p[i])
		}
	}
	return out
}

// simplifyRange marks the vertices to keep between first and last (both
// already kept). It uses an explicit stack so long contours cannot exhaust
// the goroutine stack.
func simplifyRange(at func(int) geometry.Point, first, last int, epsilon float64, keep []bool) {
	type span struct{ a, b int }
	stack := []span{{first, last}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.b-s.a < 2 {
			continue
		}

		a, b := at(s.a), at(s.b)
		maxDist := -1.0
		idx := -1
		for i := s.a + 1; i < s.b; i++ {
			if d := segmentDistance(at(i), a, b); d > maxDist {
				maxDist, idx = d, i
			}
		}

		if maxDist > epsilon {
			keep[idx] = true
			stack = append(stack, span{s.a, idx}, span{idx, s.b})
		}
	}
}

// segmentDistance returns the distance from p to the line through a and b,
// or to a when the two coincide.
func segmentDistance(p, a, b geometry.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geometry.Dist(p, a)
	}
	return math.Abs(dy*(p.X-a.X)-dx*(p.Y-a.Y)) / length
}
