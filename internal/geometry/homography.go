package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrDegenerate is returned when four correspondences do not define a
// projective transform, typically because three of the points are collinear.
var ErrDegenerate = errors.New("geometry: degenerate quadrilateral")

// Homography is a planar projective transform stored as a row-major 3x3
// matrix with the bottom-right element normalized to 1.
type Homography struct {
	m [9]float64
}

// NewHomography computes the transform that maps each src[i] onto dst[i].
//
// The eight unknowns are found by solving the linear system
//
//	x' = (h0 x + h1 y + h2) / (h6 x + h7 y + 1)
//	y' = (h3 x + h4 y + h5) / (h6 x + h7 y + 1)
//
// written out for the four correspondences.
func NewHomography(src, dst [4]Point) (*Homography, error) {
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * u, -y * u})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * v, -y * v})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	hom := &Homography{}
	for i := 0; i < 8; i++ {
		val := h.AtVec(i)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, ErrDegenerate
		}
		hom.m[i] = val
	}
	hom.m[8] = 1
	return hom, nil
}

// Apply maps p through the transform. Points on the transform's line at
// infinity map to +Inf coordinates.
func (h *Homography) Apply(p Point) Point {
	m := &h.m
	w := m[6]*p.X + m[7]*p.Y + m[8]
	if w == 0 {
		return Point{X: math.Inf(1), Y: math.Inf(1)}
	}
	return Point{
		X: (m[0]*p.X + m[1]*p.Y + m[2]) / w,
		Y: (m[3]*p.X + m[4]*p.Y + m[5]) / w,
	}
}

// Matrix returns the row-major 3x3 coefficients.
func (h *Homography) Matrix() [9]float64 {
	return h.m
}
