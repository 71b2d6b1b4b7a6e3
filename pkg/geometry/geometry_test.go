package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func pointsClose(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestRotatedAboutSelfIsNoOp(t *testing.T) {
	p := Point{X: 10, Y: 20}
	for _, angle := range []Angle{0, 45, 90, 180, 270, -90, 720} {
		got := p.Rotated(angle, p)
		if !pointsClose(got, p) {
			t.Errorf("Rotated(%v) about self: expected %v, got %v", angle, p, got)
		}
	}
}

func TestRotated90(t *testing.T) {
	// (1, 0) rotated 90° CCW about the origin lands on (0, 1)
	got := Point{X: 1, Y: 0}.Rotated(90, Point{})
	if !pointsClose(got, Point{X: 0, Y: 1}) {
		t.Errorf("expected (0, 1), got %v", got)
	}
}

func TestRotatedAboutPivot(t *testing.T) {
	// (11, 20) rotated 90° about (10, 20) lands on (10, 21)
	got := Point{X: 11, Y: 20}.Rotated(90, Point{X: 10, Y: 20})
	if !pointsClose(got, Point{X: 10, Y: 21}) {
		t.Errorf("expected (10, 21), got %v", got)
	}
}

func TestNormalized(t *testing.T) {
	cases := []struct {
		in   Angle
		want Angle
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{-90, 270},
		{450, 90},
	}
	for _, c := range cases {
		if got := c.in.Normalized(); math.Abs(float64(got-c.want)) > epsilon {
			t.Errorf("Normalized(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{TranslateX: 5, TranslateY: -3, Rotate: 30, ScaleX: 2, ScaleY: 2}
	p := Point{X: 1.5, Y: -4.25}

	back := tr.ApplyInverse(tr.Apply(p))
	if !pointsClose(back, p) {
		t.Errorf("expected %v after round trip, got %v", p, back)
	}
}

func TestBoundingBoxExpand(t *testing.T) {
	bb := NewBoundingBox()
	if !bb.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}

	bb.Expand(Point{X: 1, Y: 2})
	bb.Expand(Point{X: -3, Y: 7})

	if bb.IsEmpty() {
		t.Fatal("expanded bounding box should not be empty")
	}
	if bb.Width() != 4 || bb.Height() != 5 {
		t.Errorf("expected 4x5, got %vx%v", bb.Width(), bb.Height())
	}
	if !bb.Contains(Point{X: 0, Y: 3}) {
		t.Error("expected bounding box to contain (0, 3)")
	}
}
