// Package geom holds the small amount of plane geometry shared by the drag
// engine and the orbit solver.
package geom

import "math"

// Point is a position or displacement in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales p by s.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3-D cross product of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the magnitude of p.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared magnitude of p.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Distance returns the distance between a and b.
func Distance(a, b Point) float64 {
	return b.Sub(a).Length()
}

// Angle returns the direction from origin to target, atan2(dy, dx).
// When the two points coincide the direction is undefined and fallback is
// returned instead.
func Angle(origin, target Point, fallback float64) float64 {
	v := target.Sub(origin)
	if v.IsZero() {
		return fallback
	}
	return math.Atan2(v.Y, v.X)
}

// Polar returns the point at distance r from origin in direction angle.
func Polar(origin Point, r, angle float64) Point {
	return Point{
		X: origin.X + r*math.Cos(angle),
		Y: origin.Y + r*math.Sin(angle),
	}
}

// NormalizeAngle maps radians into [0, 2π).
func NormalizeAngle(radians float64) float64 {
	const k = 2 * math.Pi
	a := math.Mod(radians, k)
	if a < 0 {
		a += k
	}
	// math.Mod of a tiny negative value can round back up to exactly 2π.
	if a >= k {
		a = 0
	}
	return a
}

// PhaseAngle returns the angle at body between the illumination source and
// the viewer, normalized to [0, 2π). Zero means the viewer sees the fully lit
// face, π the fully dark face.
func PhaseAngle(viewer, body, source Point) float64 {
	s := source.Sub(body)
	v := viewer.Sub(body)
	return NormalizeAngle(math.Atan2(v.Cross(s), v.Dot(s)))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
