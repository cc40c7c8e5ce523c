package scan

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/geometry"
	"github.com/ironsheep/image-to-scan/internal/imaging"
)

// Status is the result class of a scan.
type Status int

const (
	// StatusNotFound means no document boundary was identified.
	StatusNotFound Status = iota
	// StatusRectified means a document was found and rectified.
	StatusRectified
)

func (s Status) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusRectified:
		return "rectified"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostics records how a scan reached its outcome.
type Diagnostics struct {
	// Contours is the number of traced contours.
	Contours int `json:"contours"`

	// Considered is the number of contours simplified after the MaxContours
	// cap.
	Considered int `json:"considered"`

	// Quads is the number of contours that simplified to four vertices.
	Quads int `json:"quads"`

	// Widths are the bounding widths of the quadrilateral candidates, in
	// descending area order.
	Widths []float64 `json:"widths,omitempty"`

	// Selected holds the widths of the two widest candidates when at least
	// two exist.
	Selected []float64 `json:"selected,omitempty"`

	// Corners of the chosen quadrilateral, if any.
	Corners *geometry.OrderedCorners `json:"corners,omitempty"`

	// RectifiedSize is the frame size before any output resize.
	RectifiedSize image.Point `json:"rectified_size"`

	// Reason explains a StatusNotFound outcome.
	Reason string `json:"reason,omitempty"`
}

// Outcome is the result of a scan.
type Outcome struct {
	Status      Status      `json:"status"`
	Frame       *Frame      `json:"-"`
	Diagnostics Diagnostics `json:"diagnostics"`

	// Cause is the detection error behind StatusNotFound. It wraps
	// detection.ErrNotFound.
	Cause error `json:"-"`
}

// Found reports whether a document was rectified.
func (o *Outcome) Found() bool {
	return o.Status == StatusRectified
}

// Pipeline detects and rectifies the document in a photo.
type Pipeline struct {
	opts      Options
	raster    Raster
	selector  detection.Selector
	rectifier Rectifier
}

// New returns a Pipeline backed by DefaultRaster.
func New(opts Options) (*Pipeline, error) {
	return NewWithRaster(opts, DefaultRaster{})
}

// NewWithRaster returns a Pipeline that delegates pixel operations to r.
func NewWithRaster(opts Options, r Raster) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = DefaultRaster{}
	}
	rect := opts.Rectifier()
	rect.Raster = r
	return &Pipeline{
		opts:      opts,
		raster:    r,
		selector:  detection.Selector{WidthTolerance: opts.WidthTolerance},
		rectifier: rect,
	}, nil
}

// Options returns the pipeline's configuration.
func (p *Pipeline) Options() Options {
	return p.opts
}

// Scan detects the document in img and rectifies it.
//
// The returned error is non-nil only for an unusable source image. A photo
// without a recognisable document yields an Outcome with StatusNotFound.
func (p *Pipeline) Scan(img image.Image) (*Outcome, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.ToNRGBA(img)
	}

	gray := p.raster.Grayscale(img)
	smooth := p.raster.Denoise(gray, p.opts.Denoise)
	edges := p.raster.DetectEdges(smooth, p.opts.CannyLow, p.opts.CannyHigh)
	contours := p.raster.TraceContours(edges)

	return p.ScanContours(contours, img)
}

// ScanContours runs the decision stage of Scan over already traced
// contours, in img's coordinate space.
//
// Contours are ranked by enclosed area, largest first, with ties kept in
// input order. Each is simplified and those reduced to four vertices become
// candidates, measured by the bounding width of the unsimplified contour.
// The two widest candidates must agree on width; the widest is rectified.
// There is no retry and no fallback.
func (p *Pipeline) ScanContours(raw []geometry.Polygon, img image.Image) (*Outcome, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidImage
	}

	out := &Outcome{Status: StatusNotFound}
	diag := &out.Diagnostics
	diag.Contours = len(raw)

	ranked := rankByArea(raw)
	if p.opts.MaxContours > 0 && len(ranked) > p.opts.MaxContours {
		ranked = ranked[:p.opts.MaxContours]
	}
	diag.Considered = len(ranked)

	var cands []detection.Candidate
	for _, i := range ranked {
		approx := p.raster.Simplify(raw[i], p.opts.EpsilonFraction)
		if len(approx) != 4 {
			continue
		}
		w := p.raster.BoundingWidth(raw[i])
		cands = append(cands, detection.Candidate{Quad: approx, Width: w})
		diag.Widths = append(diag.Widths, w)
	}
	diag.Quads = len(cands)

	sel, err := p.selector.Select(cands)
	if sel != nil {
		diag.Selected = sel.Widths[:]
	}
	if err != nil {
		return p.notFound(out, err)
	}
	diag.Corners = &sel.Corners

	frame, err := p.rectifier.Rectify(sel.Corners, img)
	if err != nil {
		return p.notFound(out, err)
	}
	diag.RectifiedSize = image.Pt(frame.Width, frame.Height)

	if size := p.opts.OutputSize; size.X > 0 && size.Y > 0 {
		frame.Image = p.raster.Resize(frame.Image, size.X, size.Y)
		frame.Width, frame.Height = size.X, size.Y
	}

	out.Status = StatusRectified
	out.Frame = frame
	return out, nil
}

// notFound converts a detection failure into a StatusNotFound outcome.
// Other errors are returned as is.
func (p *Pipeline) notFound(out *Outcome, err error) (*Outcome, error) {
	if !errors.Is(err, detection.ErrNotFound) {
		return nil, err
	}
	out.Cause = err
	out.Diagnostics.Reason = err.Error()
	return out, nil
}

// rankByArea returns contour indices ordered by decreasing area.
func rankByArea(contours []geometry.Polygon) []int {
	areas := make([]float64, len(contours))
	idx := make([]int, len(contours))
	for i, c := range contours {
		areas[i] = c.Area()
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return areas[idx[a]] > areas[idx[b]]
	})
	return idx
}
