package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-to-scan/internal/geometry"
)

// Resample builds a width x height image whose pixel (x, y) is read from src
// at inverse.Apply(x, y) with bilinear interpolation.
//
// inverse maps destination coordinates to source coordinates, so every
// destination pixel is written exactly once. Samples that fall outside src
// are opaque black.
//
// The returned image has bounds (0, 0)-(width, height). A non-positive size
// yields an empty image.
func Resample(src image.Image, inverse *geometry.Homography, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	// Clone normalizes the source to NRGBA with bounds at the origin.
	s := imaging.Clone(src)
	origin := src.Bounds().Min
	sw, sh := s.Bounds().Dx(), s.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+width*4]
		for x := 0; x < width; x++ {
			p := inverse.Apply(geometry.Point{X: float64(x), Y: float64(y)})
			sampleBilinear(s, sw, sh, p.X-float64(origin.X), p.Y-float64(origin.Y), row[x*4:x*4+4])
		}
	}

	return dst
}

// sampleBilinear writes the interpolated colour at (fx, fy) into out.
// Neighbours outside the image count as opaque black.
func sampleBilinear(s *image.NRGBA, w, h int, fx, fy float64, out []uint8) {
	if math.IsNaN(fx) || math.IsNaN(fy) || fx <= -1 || fy <= -1 || fx >= float64(w) || fy >= float64(h) {
		out[0], out[1], out[2], out[3] = 0, 0, 0, 255
		return
	}

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	ax := fx - float64(x0)
	ay := fy - float64(y0)

	var acc [4]float64
	weights := [4]float64{(1 - ax) * (1 - ay), ax * (1 - ay), (1 - ax) * ay, ax * ay}
	offsets := [4]image.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for k, o := range offsets {
		wk := weights[k]
		if wk == 0 {
			continue
		}
		px, py := x0+o.X, y0+o.Y
		if px < 0 || py < 0 || px >= w || py >= h {
			acc[3] += 255 * wk
			continue
		}
		i := py*s.Stride + px*4
		acc[0] += float64(s.Pix[i]) * wk
		acc[1] += float64(s.Pix[i+1]) * wk
		acc[2] += float64(s.Pix[i+2]) * wk
		acc[3] += float64(s.Pix[i+3]) * wk
	}

	for c := 0; c < 4; c++ {
		out[c] = uint8(math.Round(math.Min(255, math.Max(0, acc[c]))))
	}
}
