package umbral

import (
	"fmt"
)

// Polynomial represents a polynomial over a scalar field
type Polynomial struct {
	curve        Curve
	coefficients []Scalar
}

// NewRandomPolynomial creates a random polynomial with the given degree and
// constant term. Used for key fragment issuance, where the constant term is
// the blinded delegating key.
func NewRandomPolynomial(curve Curve, degree int, constantTerm Scalar) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must be non-negative")
	}

	coefficients := make([]Scalar, degree+1)
	coefficients[0] = constantTerm

	for i := 1; i <= degree; i++ {
		coeff, err := curve.ScalarRandom()
		if err != nil {
			return nil, fmt.Errorf("failed to generate coefficient %d: %w", i, err)
		}
		coefficients[i] = coeff
	}

	return &Polynomial{
		curve:        curve,
		coefficients: coefficients,
	}, nil
}

// Evaluate evaluates the polynomial at a given point
func (p *Polynomial) Evaluate(x Scalar) Scalar {
	if len(p.coefficients) == 0 {
		return p.curve.ScalarZero()
	}

	// Horner's method: f(x) = a0 + x(a1 + x(a2 + ...)).
	// Start from a fresh scalar so a degree-0 evaluation never hands the
	// caller an alias of the constant term, which Zeroize would later wipe.
	result := p.curve.ScalarZero().Add(p.coefficients[len(p.coefficients)-1])

	for i := len(p.coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coefficients[i])
	}

	return result
}

// Degree returns the degree of the polynomial
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Zeroize securely clears the polynomial coefficients
func (p *Polynomial) Zeroize() {
	ZeroizeScalarSlice(p.coefficients)
	for i := range p.coefficients {
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}
