package imaging

import (
	"image"
	"math"
)

// Default Canny thresholds, on the 0-255 Sobel magnitude scale.
const (
	DefaultCannyLow  = 30
	DefaultCannyHigh = 400
)

// DetectEdges performs Canny edge detection on a grayscale image.
//
// Parameters:
//   - gray: Source image, already smoothed by the caller.
//   - thresholdLow: Gradient magnitude below which pixels are never edges.
//   - thresholdHigh: Gradient magnitude above which pixels are always edges.
//
// Thresholds use the scale of a Sobel operator applied to 8-bit intensities,
// so values above 255 are meaningful (a full black/white step produces a
// magnitude of about 1020).
//
// Returns a binary edge map with the bounds of gray where edge pixels are 255
// and all others are 0. Edges are one pixel wide.
//
// # Algorithm
//
//  1. Gradient computation: Sobel operators for X and Y gradients
//     magnitude = sqrt(Gx² + Gy²)
//     direction = atan2(Gy, Gx)
//
//  2. Non-maximum suppression: a pixel survives when it is strictly greater
//     than its neighbour on one side of the gradient direction and not less
//     than the other. The asymmetry keeps exactly one pixel of a two-pixel
//     plateau, which is what makes inner and outer contour traces of the same
//     edge coincide.
//
//  3. Hysteresis thresholding:
//     - Pixels above thresholdHigh are strong edges (always kept)
//     - Pixels between thresholdLow and thresholdHigh are weak edges
//     (kept only if connected to strong edges through other weak edges)
//     - Pixels below thresholdLow are discarded
func DetectEdges(gray *image.Gray, thresholdLow, thresholdHigh int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(bounds)
	if width < 3 || height < 3 {
		return result
	}

	pix := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.Pix[y*gray.Stride+x])
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -pix(x-1, y-1) + pix(x+1, y-1) -
				2*pix(x-1, y) + 2*pix(x+1, y) -
				pix(x-1, y+1) + pix(x+1, y+1)
			gy := -pix(x-1, y-1) - 2*pix(x, y-1) - pix(x+1, y-1) +
				pix(x-1, y+1) + 2*pix(x, y+1) + pix(x+1, y+1)
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			mag := magnitude[i]
			if mag == 0 {
				continue
			}

			angle := direction[i]
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[i-1]
				n2 = magnitude[i+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[i-width-1]
				n2 = magnitude[i+width+1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[i-width]
				n2 = magnitude[i+width]
			} else {
				n1 = magnitude[i-width+1]
				n2 = magnitude[i+width-1]
			}

			if mag > n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	low := float64(thresholdLow)
	high := float64(thresholdHigh)
	stack := make([]int, 0, 256)
	for i, v := range suppressed {
		if v >= high && result.Pix[pixOffset(result, i, width)] == 0 {
			result.Pix[pixOffset(result, i, width)] = 255
			stack = append(stack, i)
		}

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := p%width, p/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := px+dx, py+dy
					if nx < 0 || nx >= width || ny < 0 || ny >= height {
						continue
					}
					n := ny*width + nx
					off := pixOffset(result, n, width)
					if result.Pix[off] == 0 && suppressed[n] >= low && suppressed[n] > 0 {
						result.Pix[off] = 255
						stack = append(stack, n)
					}
				}
			}
		}
	}

	return result
}

// pixOffset converts a dense index over a width-wide grid into an offset in
// img.Pix, which may have a larger stride.
func pixOffset(img *image.Gray, i, width int) int {
	return (i/width)*img.Stride + i%width
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
