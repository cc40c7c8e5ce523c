package geometry

import (
	"testing"
)

// permutations returns every ordering of pts.
func permutations(pts [4]Point) [][4]Point {
	var out [][4]Point
	var permute func(k int, cur [4]Point)
	permute = func(k int, cur [4]Point) {
		if k == len(cur) {
			out = append(out, cur)
			return
		}
		for i := k; i < len(cur); i++ {
			cur[k], cur[i] = cur[i], cur[k]
			permute(k+1, cur)
			cur[k], cur[i] = cur[i], cur[k]
		}
	}
	permute(0, pts)
	return out
}

func TestOrderCorners_AllPermutations(t *testing.T) {
	tl, tr, br, bl := Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)
	perms := permutations([4]Point{tl, tr, br, bl})
	if len(perms) != 24 {
		t.Fatalf("expected 24 permutations, got %d", len(perms))
	}

	for _, p := range perms {
		got := OrderCorners(p)
		want := OrderedCorners{tl, tr, br, bl}
		if got != want {
			t.Errorf("OrderCorners(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestOrderCorners_Invariants(t *testing.T) {
	tests := []struct {
		name string
		pts  [4]Point
	}{
		{"perspective trapezoid", [4]Point{Pt(220, 40), Pt(35, 60), Pt(250, 300), Pt(10, 280)}},
		{"slight rotation", [4]Point{Pt(105, 12), Pt(8, 20), Pt(98, 160), Pt(1, 150)}},
		{"negative coordinates", [4]Point{Pt(-5, -5), Pt(5, -6), Pt(6, 4), Pt(-4, 5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range permutations(tt.pts) {
				c := OrderCorners(p)
				for _, q := range p {
					if q.X+q.Y < c.TL().X+c.TL().Y {
						t.Errorf("%v has smaller sum than top-left %v", q, c.TL())
					}
					if q.X+q.Y > c.BR().X+c.BR().Y {
						t.Errorf("%v has larger sum than bottom-right %v", q, c.BR())
					}
					if q.Y-q.X < c.TR().Y-c.TR().X {
						t.Errorf("%v has smaller difference than top-right %v", q, c.TR())
					}
					if q.Y-q.X > c.BL().Y-c.BL().X {
						t.Errorf("%v has larger difference than bottom-left %v", q, c.BL())
					}
				}
			}
		})
	}
}

func TestOrderCorners_TiesResolveToFirstOccurrence(t *testing.T) {
	// (0,10) and (10,0) share sum 10 with (5,5); the diamond's corners tie on
	// both keys so the earliest index must win each slot.
	pts := [4]Point{Pt(5, 5), Pt(0, 10), Pt(10, 0), Pt(5, 5)}
	got := OrderCorners(pts)

	if got.TL() != Pt(5, 5) {
		t.Errorf("TL: got %v, want (5,5)", got.TL())
	}
	if got.BR() != Pt(5, 5) {
		t.Errorf("BR: got %v, want (5,5)", got.BR())
	}
	if got.TR() != Pt(10, 0) {
		t.Errorf("TR: got %v, want (10,0)", got.TR())
	}
	if got.BL() != Pt(0, 10) {
		t.Errorf("BL: got %v, want (0,10)", got.BL())
	}
}

func TestQuadFromPolygon(t *testing.T) {
	if _, ok := QuadFromPolygon(Polygon{Pt(0, 0), Pt(1, 0), Pt(1, 1)}); ok {
		t.Error("triangle should not convert to a quad")
	}

	q, ok := QuadFromPolygon(Polygon{Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(0, 1)})
	if !ok {
		t.Fatal("expected four-vertex polygon to convert")
	}
	if q[2] != Pt(1, 1) {
		t.Errorf("vertex 2: got %v, want (1,1)", q[2])
	}
}
