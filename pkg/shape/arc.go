package shape

import "math"

// Arc is an annular sector centred on the origin. Angles are in radians,
// clockwise from 12 o'clock. An inner radius of 0 gives a pie slice.
type Arc struct {
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

// Path returns the sector outline.
func (a Arc) Path() string {
	p := NewPath()
	a.Draw(p)
	return p.String()
}

// Draw writes the sector into p.
func (a Arc) Draw(p *Path) {
	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0 := a.StartAngle - math.Pi/2
	a1 := a.EndAngle - math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	switch {
	case !(r1 > epsilon):
		p.MoveTo(0, 0)

	case da > tauEpsilon:
		p.MoveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.Arc(0, 0, r1, a0, a1, !cw)
		if r0 > epsilon {
			p.MoveTo(r0*math.Cos(a1), r0*math.Sin(a1))
			p.Arc(0, 0, r0, a1, a0, cw)
		}

	default:
		p.MoveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		if da > epsilon {
			p.Arc(0, 0, r1, a0, a1, !cw)
		}
		if !(r0 > epsilon) || !(da > epsilon) {
			p.LineTo(r0*math.Cos(a1), r0*math.Sin(a1))
		} else {
			p.Arc(0, 0, r0, a1, a0, cw)
		}
	}
	p.ClosePath()
}

// Centroid returns the midpoint of the sector's centre line, a natural
// anchor for labels.
func (a Arc) Centroid() Point {
	r := (a.InnerRadius + a.OuterRadius) / 2
	return Polar(r, (a.StartAngle+a.EndAngle)/2)
}
