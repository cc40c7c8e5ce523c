package detection

import (
	"image"

	"github.com/ironsheep/image-to-scan/internal/geometry"
)

// neighbors lists the 8-connected offsets in clockwise order (y down),
// starting east. Index arithmetic modulo 8 rotates around a pixel.
var neighbors = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
}

// TraceContours extracts every border of the non-zero regions in a binary
// edge map.
//
// It implements Suzuki-Abe border following: the map is scanned in raster
// order and each newly met outer border (a foreground pixel with background
// to its left) or hole border (a foreground pixel with unlabelled background
// to its right) is followed all the way around. Foreground is 8-connected and
// background 4-connected.
//
// Both outer and hole borders are returned in discovery order, one vertex per
// boundary pixel, with no hierarchy. A closed one-pixel-wide edge loop
// therefore yields two contours over the same pixels: its outer trace and its
// inner trace.
func TraceContours(edges *image.Gray) []geometry.Polygon {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	// Pad by one pixel so border following never leaves the grid.
	stride := w + 2
	f := make([]int32, stride*(h+2))
	for y := 0; y < h; y++ {
		row := edges.Pix[(y)*edges.Stride : (y)*edges.Stride+w]
		for x, v := range row {
			if v != 0 {
				f[(y+1)*stride+x+1] = 1
			}
		}
	}

	t := &tracer{f: f, stride: stride, origin: b.Min}
	contours := make([]geometry.Polygon, 0)
	nbd := int32(1)

	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			idx := y*stride + x
			v := f[idx]
			if v == 0 {
				continue
			}

			var from int
			switch {
			case v == 1 && f[idx-1] == 0:
				from = 4 // outer border, start searching from the west
			case v >= 1 && f[idx+1] == 0:
				from = 0 // hole border, start searching from the east
			default:
				continue
			}

			nbd++
			contours = append(contours, t.follow(x, y, from, nbd))
		}
	}

	return contours
}

type tracer struct {
	f      []int32
	stride int
	origin image.Point
}

func (t *tracer) at(x, y, dir int) int32 {
	n := neighbors[dir]
	return t.f[(y+n.Y)*t.stride+x+n.X]
}

func (t *tracer) point(x, y int) geometry.Point {
	return geometry.Point{
		X: float64(x - 1 + t.origin.X),
		Y: float64(y - 1 + t.origin.Y),
	}
}

// follow traces one border starting at (x, y). from is the direction of the
// background neighbour that triggered the start.
func (t *tracer) follow(x, y, from int, nbd int32) geometry.Polygon {
	// Search clockwise from the trigger for the first foreground neighbour.
	first := -1
	for k := 0; k < 8; k++ {
		d := (from + k) % 8
		if t.at(x, y, d) != 0 {
			first = d
			break
		}
	}
	if first < 0 {
		// Isolated pixel.
		t.f[y*t.stride+x] = -nbd
		return geometry.Polygon{t.point(x, y)}
	}

	x1, y1 := x+neighbors[first].X, y+neighbors[first].Y
	cx, cy := x, y
	prev := first // direction from the current pixel to the previous one

	contour := make(geometry.Polygon, 0, 64)
	for {
		contour = append(contour, t.point(cx, cy))

		// Search counterclockwise, starting just past the previous pixel.
		next := -1
		eastZero := false
		for k := 1; k <= 8; k++ {
			d := (prev - k + 16) % 8
			if t.at(cx, cy, d) != 0 {
				next = d
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		idx := cy*t.stride + cx
		if eastZero {
			t.f[idx] = -nbd
		} else if t.f[idx] == 1 {
			t.f[idx] = nbd
		}

		nx, ny := cx+neighbors[next].X, cy+neighbors[next].Y
		if nx == x && ny == y && cx == x1 && cy == y1 {
			return contour
		}

		prev = (next + 4) % 8
		cx, cy = nx, ny
	}
}
