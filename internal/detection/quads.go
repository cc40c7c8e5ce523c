package detection

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/image-to-scan/internal/geometry"
)

// ErrNotFound reports that no document boundary could be identified. It is
// an expected outcome, not a processing failure; every detection failure
// below wraps it.
var ErrNotFound = errors.New("detection: document not found")

var (
	// ErrTooFewCandidates means fewer than two quadrilaterals were offered.
	ErrTooFewCandidates = fmt.Errorf("%w: fewer than two quadrilateral candidates", ErrNotFound)

	// ErrWidthMismatch means the two widest quadrilaterals disagree on width.
	ErrWidthMismatch = fmt.Errorf("%w: widest candidates disagree on width", ErrNotFound)
)

// Candidate is a four-vertex polygon offered for selection, paired with the
// bounding width of the contour it was simplified from.
type Candidate struct {
	Quad  geometry.Polygon
	Width float64
}

// Selector picks the document boundary from a set of quadrilaterals.
//
// A real document edge is normally traced twice (its outer and inner border),
// producing two quadrilaterals of the same width; clutter that happens to
// simplify to four vertices rarely has such a twin. The selector therefore
// takes the two widest candidates and only trusts them when they agree.
type Selector struct {
	// WidthTolerance is the largest accepted relative width difference,
	// |a-b| / max(a,b). Zero requires exact equality.
	WidthTolerance float64
}

// Selection is the result of a successful Select.
type Selection struct {
	Corners geometry.OrderedCorners
	// Index of the chosen candidate in the input slice.
	Index int
	// Widths of the two widest candidates, widest first.
	Widths [2]float64
}

// Select returns the ordered corners of the widest candidate when the two
// widest candidates agree. Ties on width go to the earlier candidate.
//
// Every candidate must have exactly four vertices. The input slice is not
// modified.
func (s Selector) Select(cands []Candidate) (*Selection, error) {
	if len(cands) < 2 {
		return nil, ErrTooFewCandidates
	}

	taken := make([]bool, len(cands))
	first := widest(cands, taken)
	taken[first] = true
	second := widest(cands, taken)

	a, b := cands[first].Width, cands[second].Width
	sel := &Selection{Index: first, Widths: [2]float64{a, b}}
	if !s.agree(a, b) {
		return sel, fmt.Errorf("%w (%g vs %g)", ErrWidthMismatch, a, b)
	}

	quad, ok := geometry.QuadFromPolygon(cands[first].Quad)
	if !ok {
		return sel, fmt.Errorf("candidate %d has %d vertices, want 4", first, len(cands[first].Quad))
	}
	sel.Corners = geometry.OrderCorners(quad)
	return sel, nil
}

func (s Selector) agree(a, b float64) bool {
	if s.WidthTolerance <= 0 {
		return a == b
	}
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return true
	}
	return math.Abs(a-b)/larger <= s.WidthTolerance
}

// widest returns the index of the first candidate with the largest width
// among those not yet taken.
func widest(cands []Candidate, taken []bool) int {
	best := -1
	for i, c := range cands {
		if taken[i] {
			continue
		}
		if best < 0 || c.Width > cands[best].Width {
			best = i
		}
	}
	return best
}
