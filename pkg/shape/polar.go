package shape

import "math"

// Point is a position in SVG user space.
type Point struct {
	X, Y float64
}

// Polar converts a radius and an angle (radians clockwise from 12 o'clock)
// to a point relative to the origin.
func Polar(r, angle float64) Point {
	return Point{X: r * math.Sin(angle), Y: -r * math.Cos(angle)}
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// TextArc returns an open clockwise arc of radius r from angle a0 to a1,
// used as a baseline for text to follow.
func TextArc(r, a0, a1 float64) string {
	p := NewPath()
	p.Arc(0, 0, r, a0-math.Pi/2, a1-math.Pi/2, false)
	return p.String()
}

// Link returns a cubic Bezier from p0 to p1 with controls c1 and c2.
func Link(p0, c1, c2, p1 Point) string {
	p := NewPath()
	p.MoveTo(p0.X, p0.Y)
	p.BezierCurveTo(c1.X, c1.Y, c2.X, c2.Y, p1.X, p1.Y)
	return p.String()
}

// HorizontalLink returns an S-shaped link from p0 to p1 whose tangents are
// horizontal at both ends.
func HorizontalLink(p0, p1 Point) string {
	mx := (p0.X + p1.X) / 2
	return Link(p0, Point{mx, p0.Y}, Point{mx, p1.Y}, p1)
}
