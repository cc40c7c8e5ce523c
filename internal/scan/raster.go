package scan

import (
	"image"

	"github.com/ironsheep/image-to-scan/internal/detection"
	"github.com/ironsheep/image-to-scan/internal/geometry"
	"github.com/ironsheep/image-to-scan/internal/imaging"
)

// Raster provides the pixel-level operations the pipeline is built from.
// Implementations must not modify their inputs.
type Raster interface {
	Grayscale(img image.Image) *image.Gray
	Denoise(gray *image.Gray, p imaging.DenoiseParams) *image.Gray
	DetectEdges(gray *image.Gray, low, high int) *image.Gray
	TraceContours(edges *image.Gray) []geometry.Polygon
	Simplify(p geometry.Polygon, epsilonFraction float64) geometry.Polygon
	BoundingWidth(p geometry.Polygon) float64

	// Resample builds a width x height image whose pixel (x, y) is read
	// from src at inverse.Apply(x, y).
	Resample(src image.Image, inverse *geometry.Homography, width, height int) image.Image

	EqualizeGray(gray *image.Gray, clipLimit float64, tiles image.Point) *image.Gray
	EqualizeColor(img image.Image, clipLimit float64, tiles image.Point) image.Image
	Resize(img image.Image, width, height int) image.Image
}

// DefaultRaster implements Raster with the pure Go operations of the
// imaging and detection packages.
type DefaultRaster struct{}

var _ Raster = DefaultRaster{}

func (DefaultRaster) Grayscale(img image.Image) *image.Gray {
	return imaging.Grayscale(img)
}

func (DefaultRaster) Denoise(gray *image.Gray, p imaging.DenoiseParams) *image.Gray {
	return imaging.Denoise(gray, p)
}

func (DefaultRaster) DetectEdges(gray *image.Gray, low, high int) *image.Gray {
	return imaging.DetectEdges(gray, low, high)
}

func (DefaultRaster) TraceContours(edges *image.Gray) []geometry.Polygon {
	return detection.TraceContours(edges)
}

func (DefaultRaster) Simplify(p geometry.Polygon, epsilonFraction float64) geometry.Polygon {
	return detection.Simplify(p, epsilonFraction)
}

func (DefaultRaster) BoundingWidth(p geometry.Polygon) float64 {
	return p.BoundingWidth()
}

func (DefaultRaster) Resample(src image.Image, inverse *geometry.Homography, width, height int) image.Image {
	return imaging.Resample(src, inverse, width, height)
}

func (DefaultRaster) EqualizeGray(gray *image.Gray, clipLimit float64, tiles image.Point) *image.Gray {
	return imaging.EqualizeGray(gray, clipLimit, tiles)
}

func (DefaultRaster) EqualizeColor(img image.Image, clipLimit float64, tiles image.Point) image.Image {
	return imaging.EqualizeColor(img, clipLimit, tiles)
}

func (DefaultRaster) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height)
}
