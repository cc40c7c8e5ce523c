package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	if d := Dist(Pt(0, 0), Pt(3, 4)); d != 5 {
		t.Errorf("Dist: got %v, want 5", d)
	}
}

func TestPolygon_BoundingWidth(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{"empty", nil, 0},
		{"single pixel", Polygon{Pt(4, 4)}, 1},
		{"rectangle", Polygon{Pt(10, 10), Pt(110, 10), Pt(110, 60), Pt(10, 60)}, 101},
		{"fractional vertices", Polygon{Pt(10.7, 0), Pt(20.2, 5)}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.BoundingWidth(); got != tt.want {
				t.Errorf("BoundingWidth: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolygon_AreaAndPerimeter(t *testing.T) {
	square := Polygon{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}

	if a := square.Area(); a != 100 {
		t.Errorf("Area: got %v, want 100", a)
	}
	if p := square.Perimeter(true); p != 40 {
		t.Errorf("closed Perimeter: got %v, want 40", p)
	}
	if p := square.Perimeter(false); p != 30 {
		t.Errorf("open Perimeter: got %v, want 30", p)
	}
	if a := (Polygon{Pt(0, 0), Pt(1, 1)}).Area(); a != 0 {
		t.Errorf("segment Area: got %v, want 0", a)
	}
}

func TestNewHomography_MapsCorrespondences(t *testing.T) {
	src := [4]Point{Pt(12, 30), Pt(205, 18), Pt(230, 290), Pt(5, 260)}
	dst := [4]Point{Pt(0, 0), Pt(199, 0), Pt(199, 279), Pt(0, 279)}

	h, err := NewHomography(src, dst)
	if err != nil {
		t.Fatalf("NewHomography failed: %v", err)
	}

	for i := range src {
		got := h.Apply(src[i])
		if math.Abs(got.X-dst[i].X) > 1e-6 || math.Abs(got.Y-dst[i].Y) > 1e-6 {
			t.Errorf("corner %d: got %v, want %v", i, got, dst[i])
		}
	}
}

func TestNewHomography_Translation(t *testing.T) {
	src := [4]Point{Pt(10, 10), Pt(110, 10), Pt(110, 60), Pt(10, 60)}
	dst := [4]Point{Pt(0, 0), Pt(100, 0), Pt(100, 50), Pt(0, 50)}

	h, err := NewHomography(dst, src)
	if err != nil {
		t.Fatalf("NewHomography failed: %v", err)
	}

	got := h.Apply(Pt(50, 25))
	if math.Abs(got.X-60) > 1e-9 || math.Abs(got.Y-35) > 1e-9 {
		t.Errorf("interior point: got %v, want (60,35)", got)
	}
}

func TestNewHomography_Degenerate(t *testing.T) {
	src := [4]Point{Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3)}
	dst := [4]Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}

	_, err := NewHomography(src, dst)
	if err == nil {
		t.Fatal("expected error for collinear source points")
	}
	if !errors.Is(err, ErrDegenerate) {
		t.Errorf("expected ErrDegenerate, got %v", err)
	}
}
