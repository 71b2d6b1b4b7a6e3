package geometry

import "math"

// Transform represents a 2D transformation (translate + rotate + scale).
// Used by renderers to map model coordinates into view coordinates.
type Transform struct {
	TranslateX float64 // Translation in X
	TranslateY float64 // Translation in Y
	Rotate     Angle   // Rotation
	ScaleX     float64 // Scale factor in X
	ScaleY     float64 // Scale factor in Y
}

// NewTransform creates an identity transform.
func NewTransform() Transform {
	return Transform{
		ScaleX: 1.0,
		ScaleY: 1.0,
	}
}

// Apply applies the transformation to a point.
func (t Transform) Apply(p Point) Point {
	x, y := p.X, p.Y

	x *= t.ScaleX
	y *= t.ScaleY

	if t.Rotate != 0 {
		sin, cos := math.Sincos(t.Rotate.Rad())
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	x += t.TranslateX
	y += t.TranslateY

	return Point{X: x, Y: y}
}

// ApplyInverse applies the inverse transformation (for view to model).
func (t Transform) ApplyInverse(p Point) Point {
	x, y := p.X, p.Y

	x -= t.TranslateX
	y -= t.TranslateY

	if t.Rotate != 0 {
		sin, cos := math.Sincos(-t.Rotate.Rad())
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	if t.ScaleX != 0 {
		x /= t.ScaleX
	}
	if t.ScaleY != 0 {
		y /= t.ScaleY
	}

	return Point{X: x, Y: y}
}
