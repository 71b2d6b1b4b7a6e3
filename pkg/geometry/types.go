// Package geometry provides the 2D types used by the schematic model.
// All coordinates are in millimeters, all angles in degrees.
package geometry

import "math"

// Point is a 2D coordinate in millimeters.
type Point struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rotated returns the point rotated counter-clockwise by the given angle
// around the pivot.
func (p Point) Rotated(a Angle, pivot Point) Point {
	if a == 0 {
		return p
	}
	sin, cos := math.Sincos(a.Rad())
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// Angle represents a rotation in degrees, counter-clockwise positive.
type Angle float64

// Rad returns the angle in radians.
func (a Angle) Rad() float64 {
	return float64(a) * math.Pi / 180.0
}

// Normalized returns the equivalent angle in [0, 360).
func (a Angle) Normalized() Angle {
	n := math.Mod(float64(a), 360.0)
	if n < 0 {
		n += 360.0
	}
	return Angle(n)
}
