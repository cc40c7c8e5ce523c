package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// Default contrast-limited equalization settings.
const (
	DefaultClipLimit = 1.0
	DefaultTileGrid  = 8
)

// EqualizeGray applies contrast-limited adaptive histogram equalization
// (CLAHE) to a grayscale image.
//
// Parameters:
//   - gray: Source image.
//   - clipLimit: Histogram clip limit relative to a flat histogram. Each bin
//     of a tile histogram is capped at max(1, clipLimit*tileArea/256) and the
//     excess is spread evenly over all bins. Zero or negative disables
//     clipping (plain adaptive equalization).
//   - tiles: Number of tiles horizontally (X) and vertically (Y). Values
//     below 1 are treated as 1.
//
// Each tile gets its own lookup table; every output pixel bilinearly blends
// the tables of the four nearest tile centres so no tile seams are visible.
// Tiles at the right and bottom edges that extend past the image reuse the
// last row and column.
func EqualizeGray(gray *image.Gray, clipLimit float64, tiles image.Point) *image.Gray {
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	result := image.NewGray(bounds)
	if width == 0 || height == 0 {
		return result
	}

	tx := max(tiles.X, 1)
	ty := max(tiles.Y, 1)
	tileW := (width + tx - 1) / tx
	tileH := (height + ty - 1) / ty
	tileArea := tileW * tileH

	clip := 0
	if clipLimit > 0 {
		clip = max(int(clipLimit*float64(tileArea)/256), 1)
	}
	lutScale := 255.0 / float64(tileArea)

	luts := make([][256]uint8, tx*ty)
	for j := 0; j < ty; j++ {
		for i := 0; i < tx; i++ {
			var hist [256]int
			for y := j * tileH; y < (j+1)*tileH; y++ {
				row := min(y, height-1) * gray.Stride
				for x := i * tileW; x < (i+1)*tileW; x++ {
					hist[gray.Pix[row+min(x, width-1)]]++
				}
			}
			if clip > 0 {
				clipHistogram(&hist, clip)
			}

			lut := &luts[j*tx+i]
			sum := 0
			for k := 0; k < 256; k++ {
				sum += hist[k]
				lut[k] = uint8(math.Min(255, math.Round(float64(sum)*lutScale)))
			}
		}
	}

	invTW := 1.0 / float64(tileW)
	invTH := 1.0 / float64(tileH)
	for y := 0; y < height; y++ {
		tyf := float64(y)*invTH - 0.5
		ty1 := int(math.Floor(tyf))
		ya := tyf - float64(ty1)
		ty2 := min(ty1+1, ty-1)
		ty1 = max(ty1, 0)

		for x := 0; x < width; x++ {
			txf := float64(x)*invTW - 0.5
			tx1 := int(math.Floor(txf))
			xa := txf - float64(tx1)
			tx2 := min(tx1+1, tx-1)
			tx1 = max(tx1, 0)

			v := gray.Pix[y*gray.Stride+x]
			top := float64(luts[ty1*tx+tx1][v])*(1-xa) + float64(luts[ty1*tx+tx2][v])*xa
			bottom := float64(luts[ty2*tx+tx1][v])*(1-xa) + float64(luts[ty2*tx+tx2][v])*xa
			result.Pix[y*result.Stride+x] = uint8(math.Round(top*(1-ya) + bottom*ya))
		}
	}

	return result
}

// clipHistogram caps every bin at limit and redistributes the excess evenly,
// handing any remainder out one count at a time at regular intervals.
func clipHistogram(hist *[256]int, limit int) {
	excess := 0
	for k := range hist {
		if over := hist[k] - limit; over > 0 {
			excess += over
			hist[k] = limit
		}
	}

	batch := excess / 256
	residual := excess - batch*256
	for k := range hist {
		hist[k] += batch
	}
	if residual > 0 {
		step := max(256/residual, 1)
		for k := 0; k < 256 && residual > 0; k += step {
			hist[k]++
			residual--
		}
	}
}

// EqualizeColor applies CLAHE to the CIE L* lightness of a colour image,
// leaving the a* and b* chroma channels untouched.
func EqualizeColor(img image.Image, clipLimit float64, tiles image.Point) *image.NRGBA {
	src := imaging.Clone(img)
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()

	lab := make([][3]float64, width*height)
	light := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*src.Stride + x*4
			c := colorful.Color{
				R: float64(src.Pix[i]) / 255,
				G: float64(src.Pix[i+1]) / 255,
				B: float64(src.Pix[i+2]) / 255,
			}
			l, a, bb := c.Lab()
			lab[y*width+x] = [3]float64{l, a, bb}
			light.Pix[y*light.Stride+x] = uint8(math.Round(math.Min(1, math.Max(0, l)) * 255))
		}
	}

	eq := EqualizeGray(light, clipLimit, tiles)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := lab[y*width+x]
			l := float64(eq.Pix[y*eq.Stride+x]) / 255
			r, g, bl := colorful.Lab(l, v[1], v[2]).Clamped().RGB255()
			i := y*dst.Stride + x*4
			dst.Pix[i] = r
			dst.Pix[i+1] = g
			dst.Pix[i+2] = bl
			dst.Pix[i+3] = src.Pix[y*src.Stride+x*4+3]
		}
	}

	return dst
}
