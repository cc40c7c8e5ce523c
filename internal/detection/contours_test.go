package detection

import (
	"image"
	"image/color"
	"testing"
)

// createOutlineImage draws a one-pixel rectangle outline from (x1,y1) to
// (x2,y2) inclusive on a black edge map.
func createOutlineImage(width, height, x1, y1, x2, y2 int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for x := x1; x <= x2; x++ {
		img.SetGray(x, y1, color.Gray{255})
		img.SetGray(x, y2, color.Gray{255})
	}
	for y := y1; y <= y2; y++ {
		img.SetGray(x1, y, color.Gray{255})
		img.SetGray(x2, y, color.Gray{255})
	}
	return img
}

func TestTraceContours_EmptyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 50, 50))

	contours := TraceContours(img)
	if len(contours) != 0 {
		t.Errorf("expected no contours, got %d", len(contours))
	}
}

func TestTraceContours_ZeroSize(t *testing.T) {
	if got := TraceContours(image.NewGray(image.Rect(0, 0, 0, 0))); got != nil {
		t.Errorf("expected nil for zero-size map, got %v", got)
	}
}

func TestTraceContours_IsolatedPixel(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	img.SetGray(4, 6, color.Gray{255})

	contours := TraceContours(img)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(contours))
	}
	if len(contours[0]) != 1 || contours[0][0].X != 4 || contours[0][0].Y != 6 {
		t.Errorf("unexpected contour %v", contours[0])
	}
}

func TestTraceContours_OutlineYieldsOuterAndHole(t *testing.T) {
	img := createOutlineImage(60, 40, 10, 5, 49, 30)

	contours := TraceContours(img)
	if len(contours) != 2 {
		t.Fatalf("expected outer and hole contours, got %d", len(contours))
	}

	outer, hole := contours[0], contours[1]

	// Outer border visits every outline pixel exactly once.
	perimeterPixels := 2*(49-10+1) + 2*(30-5-1)
	if len(outer) != perimeterPixels {
		t.Errorf("outer contour: got %d points, want %d", len(outer), perimeterPixels)
	}
	if outer[0].X != 10 || outer[0].Y != 5 {
		t.Errorf("outer contour should start at top-left pixel, got %v", outer[0])
	}

	if outer.BoundingWidth() != 40 {
		t.Errorf("outer width: got %v, want 40", outer.BoundingWidth())
	}
	if hole.BoundingWidth() != outer.BoundingWidth() {
		t.Errorf("hole width %v should equal outer width %v", hole.BoundingWidth(), outer.BoundingWidth())
	}

	// Every traced point lies on the outline.
	for _, c := range contours {
		for _, p := range c {
			if img.GrayAt(int(p.X), int(p.Y)).Y == 0 {
				t.Fatalf("contour point %v is not an edge pixel", p)
			}
		}
	}
}

func TestTraceContours_FilledBlockHasNoHole(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for y := 5; y < 12; y++ {
		for x := 3; x < 15; x++ {
			img.SetGray(x, y, color.Gray{255})
		}
	}

	contours := TraceContours(img)
	if len(contours) != 1 {
		t.Fatalf("expected a single outer contour, got %d", len(contours))
	}
	if w := contours[0].BoundingWidth(); w != 12 {
		t.Errorf("width: got %v, want 12", w)
	}
}

func TestTraceContours_SeparateShapes(t *testing.T) {
	img := createOutlineImage(100, 50, 5, 5, 30, 30)
	other := createOutlineImage(100, 50, 50, 10, 90, 40)
	for i, v := range other.Pix {
		if v != 0 {
			img.Pix[i] = v
		}
	}

	contours := TraceContours(img)
	if len(contours) != 4 {
		t.Errorf("expected 4 contours (2 outer, 2 hole), got %d", len(contours))
	}
}

func TestTraceContours_OffsetBounds(t *testing.T) {
	full := createOutlineImage(60, 60, 20, 20, 40, 40)
	sub := full.SubImage(image.Rect(10, 10, 50, 50)).(*image.Gray)

	contours := TraceContours(sub)
	if len(contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(contours))
	}
	if contours[0][0].X != 20 || contours[0][0].Y != 20 {
		t.Errorf("contour should use absolute coordinates, got start %v", contours[0][0])
	}
}
