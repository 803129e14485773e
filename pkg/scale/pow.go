package scale

import "math"

// Pow is a power scale: the domain and the input are raised to Exponent
// (sign-preserving) before the linear mapping.
type Pow struct {
	lin      Linear
	d0, d1   float64
	exponent float64
}

// NewPow returns a power scale with the given exponent.
func NewPow(exponent, d0, d1, r0, r1 float64) Pow {
	return Pow{
		lin:      NewLinear(powSigned(d0, exponent), powSigned(d1, exponent), r0, r1),
		d0:       d0,
		d1:       d1,
		exponent: exponent,
	}
}

// NewSqrt returns a square-root scale, the usual choice for area-encoded volumes.
func NewSqrt(d0, d1, r0, r1 float64) Pow {
	return NewPow(0.5, d0, d1, r0, r1)
}

// WithClamp returns a copy of the scale that clamps outputs to the range.
func (s Pow) WithClamp(clamp bool) Pow {
	s.lin = s.lin.WithClamp(clamp)
	return s
}

// Domain returns the untransformed domain endpoints.
func (s Pow) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range endpoints.
func (s Pow) Range() (float64, float64) { return s.lin.Range() }

// Exponent returns the power applied to domain values.
func (s Pow) Exponent() float64 { return s.exponent }

// Apply maps x from the domain into the range.
func (s Pow) Apply(x float64) float64 {
	return s.lin.Apply(powSigned(x, s.exponent))
}

// Invert maps y from the range back into the domain.
func (s Pow) Invert(y float64) float64 {
	return powSigned(s.lin.Invert(y), 1/s.exponent)
}

func powSigned(x, k float64) float64 {
	if k == 1 {
		return x
	}
	if x < 0 {
		return -math.Pow(-x, k)
	}
	return math.Pow(x, k)
}
