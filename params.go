package umbral

// Parameters holds the immutable scheme constants for one curve choice.
// Instances are derived on demand and never mutated.
type Parameters struct {
	curve Curve
	g     Point
}

// NewParameters derives the scheme parameters for the given curve
func NewParameters(curve Curve) *Parameters {
	return &Parameters{
		curve: curve,
		g:     curve.BasePoint(),
	}
}

// Curve returns the underlying curve
func (p *Parameters) Curve() Curve {
	return p.curve
}

// Generator returns the group generator
func (p *Parameters) Generator() Point {
	return p.g
}

// CapsuleSize returns the fixed width of a serialized capsule:
// two compressed points and one scalar.
func (p *Parameters) CapsuleSize() int {
	return 2*p.curve.PointSize() + p.curve.ScalarSize()
}
