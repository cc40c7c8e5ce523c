package scan

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/geometry"
	"github.com/ironsheep/image-to-scan/internal/imaging"
)

// ErrDegenerate means the corners span less than one pixel in width or
// height, or are collinear. It wraps detection.ErrNotFound.
var ErrDegenerate = fmt.Errorf("%w: degenerate quadrilateral", detection.ErrNotFound)

// ErrInvalidImage is returned for a nil or empty source image.
var ErrInvalidImage = errors.New("scan: invalid source image")

// Frame is a rectified document.
type Frame struct {
	// Image is Width x Height with bounds at the origin. Rectify returns an
	// *image.Gray for ModeGray and an *image.NRGBA otherwise; a resized frame
	// is always *image.NRGBA.
	Image image.Image

	Width  int
	Height int

	// Corners are the source corners the frame was rectified from.
	Corners geometry.OrderedCorners
}

// Rectifier warps the quadrilateral spanned by four ordered corners onto an
// upright rectangle and post-processes the result.
type Rectifier struct {
	// Raster performs resampling and equalization. Nil uses DefaultRaster.
	Raster Raster

	Mode Mode

	// ClipLimit is the contrast equalization clip limit; zero disables
	// clipping.
	ClipLimit float64

	// TileGrid is the equalization tile grid; zero uses 8x8.
	TileGrid image.Point
}

// Rectifier returns the Rectifier configured by o.
func (o Options) Rectifier() Rectifier {
	return Rectifier{
		Raster:    DefaultRaster{},
		Mode:      o.Mode,
		ClipLimit: o.ClipLimit,
		TileGrid:  o.TileGrid,
	}
}

// DestinationSize returns the size of the rectangle the corners map onto:
// the longer of each pair of opposite edges, truncated to whole pixels.
func DestinationSize(c geometry.OrderedCorners) (width, height int) {
	widthTop := geometry.Dist(c.TR(), c.TL())
	widthBottom := geometry.Dist(c.BR(), c.BL())
	heightLeft := geometry.Dist(c.TL(), c.BL())
	heightRight := geometry.Dist(c.TR(), c.BR())

	w := math.Floor(math.Max(widthTop, widthBottom))
	h := math.Floor(math.Max(heightLeft, heightRight))
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return 0, 0
	}
	return int(w), int(h)
}

// Rectify resamples the region of src bounded by corners into an upright
// frame of DestinationSize(corners).
//
// Corners are in src's coordinate space. Destination corners are (0,0),
// (W-1,0), (W-1,H-1) and (0,H-1), in the same TL, TR, BR, BL order. A one
// pixel wide or tall frame is sampled along the TL-BL or TL-TR edge.
//
// A frame narrower or shorter than one pixel, or corners that admit no
// projective mapping, yield ErrDegenerate.
func (r Rectifier) Rectify(corners geometry.OrderedCorners, src image.Image) (*Frame, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, ErrInvalidImage
	}

	w, h := DestinationSize(corners)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: destination size %dx%d", ErrDegenerate, w, h)
	}

	// The mapping needs a non-empty target rectangle even when the frame
	// itself is a single row or column.
	spanX, spanY := float64(max(w-1, 1)), float64(max(h-1, 1))
	dst := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: spanX, Y: 0},
		{X: spanX, Y: spanY},
		{X: 0, Y: spanY},
	}
	inverse, err := geometry.NewHomography(dst, [4]geometry.Point(corners))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	raster := r.raster()
	warped := raster.Resample(src, inverse, w, h)

	out, err := r.finish(raster, warped)
	if err != nil {
		return nil, err
	}

	return &Frame{
		Image:   out,
		Width:   w,
		Height:  h,
		Corners: corners,
	}, nil
}

func (r Rectifier) raster() Raster {
	if r.Raster == nil {
		return DefaultRaster{}
	}
	return r.Raster
}

func (r Rectifier) tiles() image.Point {
	if r.TileGrid.X <= 0 || r.TileGrid.Y <= 0 {
		return image.Pt(imaging.DefaultTileGrid, imaging.DefaultTileGrid)
	}
	return r.TileGrid
}

// finish applies the Mode's post-processing.
func (r Rectifier) finish(raster Raster, img image.Image) (image.Image, error) {
	switch r.Mode {
	case ModeGray:
		return raster.EqualizeGray(raster.Grayscale(img), r.ClipLimit, r.tiles()), nil
	case ModeGrayRGB:
		return imaging.ToNRGBA(raster.EqualizeGray(raster.Grayscale(img), r.ClipLimit, r.tiles())), nil
	case ModeColor:
		return raster.EqualizeColor(img, r.ClipLimit, r.tiles()), nil
	case ModeRaw:
		return img, nil
	}
	return nil, fmt.Errorf("unsupported mode %v", r.Mode)
}
