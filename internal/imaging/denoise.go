package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// DenoiseParams configures the smoothing applied before edge detection.
type DenoiseParams struct {
	// Diameter of the bilateral filter neighbourhood in pixels. Values below
	// 3 disable the bilateral pass.
	Diameter int `yaml:"diameter"`

	// SigmaColor controls how different two intensities may be before the
	// bilateral filter stops averaging them.
	SigmaColor float64 `yaml:"sigma_color"`

	// SigmaSpace controls how quickly neighbour weights fall off with
	// distance.
	SigmaSpace float64 `yaml:"sigma_space"`

	// MedianRadius is the radius of the median filter applied after the
	// bilateral pass. Zero disables it.
	MedianRadius float64 `yaml:"median_radius"`
}

// DefaultDenoiseParams returns the settings tuned for photographed paper
// documents: an 11 pixel bilateral filter with sigma 17 followed by a 5x5
// median.
func DefaultDenoiseParams() DenoiseParams {
	return DenoiseParams{
		Diameter:     11,
		SigmaColor:   17,
		SigmaSpace:   17,
		MedianRadius: 2,
	}
}

// Grayscale converts an image to single-channel intensity, keeping its
// bounds.
func Grayscale(img image.Image) *image.Gray {
	return toGray(effect.Grayscale(img))
}

// toGray copies the red channel of an RGBA image whose channels are already
// equal.
func toGray(rgba *image.RGBA) *image.Gray {
	bounds := rgba.Bounds()
	gray := image.NewGray(bounds)
	width, height := bounds.Dx(), bounds.Dy()
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return gray
}

// Denoise smooths a grayscale image while keeping strong edges intact.
//
// The bilateral pass flattens paper texture and sensor noise without blurring
// the page boundary; the median pass then removes remaining speckles.
func Denoise(gray *image.Gray, p DenoiseParams) *image.Gray {
	out := gray
	if p.Diameter >= 3 {
		out = bilateral(out, p.Diameter, p.SigmaColor, p.SigmaSpace)
	}
	if p.MedianRadius > 0 {
		out = toGray(effect.Median(out, p.MedianRadius))
	}
	return out
}

// bilateral applies a bilateral filter over a circular window of the given
// diameter. Border pixels use clamped (replicated) edge values.
func bilateral(gray *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	result := image.NewGray(bounds)
	radius := diameter / 2

	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	var colorWeight [256]float64
	for i := range colorWeight {
		colorWeight[i] = math.Exp(-float64(i*i) / (2 * sigmaColor * sigmaColor))
	}

	type tap struct {
		dx, dy int
		w      float64
	}
	taps := make([]tap, 0, diameter*diameter)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			r2 := float64(dx*dx + dy*dy)
			if r2 > float64(radius*radius) {
				continue
			}
			taps = append(taps, tap{dx, dy, math.Exp(-r2 / (2 * sigmaSpace * sigmaSpace))})
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			center := int(gray.Pix[y*gray.Stride+x])
			var sum, norm float64
			for _, t := range taps {
				px := clamp(x+t.dx, 0, width-1)
				py := clamp(y+t.dy, 0, height-1)
				v := int(gray.Pix[py*gray.Stride+px])
				diff := v - center
				if diff < 0 {
					diff = -diff
				}
				w := t.w * colorWeight[diff]
				sum += w * float64(v)
				norm += w
			}
			result.Pix[y*result.Stride+x] = uint8(math.Round(sum / norm))
		}
	}

	return result
}
