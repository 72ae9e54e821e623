package umbral

import (
	"fmt"
)

// Capsule is the self-verifying KEM ciphertext of the scheme. It carries no
// secret material and is immutable after construction. Every live instance
// satisfies
//
//	g^signature == pointV + pointE^H1(pointE, pointV)
//
// which is enforced at the only two construction sites: Encapsulate and
// CapsuleFromBytes. There is no other way to obtain a Capsule.
type Capsule struct {
	params    *Parameters
	pointE    Point
	pointV    Point
	signature Scalar
}

// newVerifiedCapsule builds a capsule and returns it only if the
// self-verification equation holds.
func newVerifiedCapsule(params *Parameters, pointE, pointV Point, signature Scalar) (*Capsule, bool) {
	capsule := &Capsule{
		params:    params,
		pointE:    pointE,
		pointV:    pointV,
		signature: signature,
	}
	if !capsule.Verify() {
		return nil, false
	}
	return capsule, true
}

// Encapsulate generates a fresh key seed and its KEM ciphertext for the
// delegating public key. The seed is the encoding of delegatingPK^(r+u) for
// two ephemeral non-zero scalars r, u; it is returned inside a SecretBox and
// must be wiped by the caller when no longer needed.
func Encapsulate(params *Parameters, delegatingPK *PublicKey) (*Capsule, *SecretBox, error) {
	curve := params.Curve()
	if delegatingPK.curve.Name() != curve.Name() {
		return nil, nil, ErrCurveMismatch
	}

	privR, err := RandomNonZeroScalar(curve)
	if err != nil {
		return nil, nil, ErrRandomnessFailed.WithCause(err)
	}
	defer privR.Zeroize()
	pubR := params.Generator().Mul(privR)

	privU, err := RandomNonZeroScalar(curve)
	if err != nil {
		return nil, nil, ErrRandomnessFailed.WithCause(err)
	}
	defer privU.Zeroize()
	pubU := params.Generator().Mul(privU)

	h := hashCapsulePoints(curve, pubR, pubU)
	s := privU.Add(privR.Mul(h))

	sum := privR.Add(privU)
	defer sum.Zeroize()
	sharedPoint := delegatingPK.Point().Mul(sum)

	capsule := &Capsule{
		params:    params,
		pointE:    pubR,
		pointV:    pubU,
		signature: s,
	}

	return capsule, NewSecretBox(sharedPoint.CompressedBytes()), nil
}

// Verify recomputes the self-verification equation. Pure and deterministic;
// always true for capsules produced by this package.
func (c *Capsule) Verify() bool {
	h := hashCapsulePoints(c.params.Curve(), c.pointE, c.pointV)
	lhs := c.params.Generator().Mul(c.signature)
	rhs := c.pointV.Add(c.pointE.Mul(h))
	return lhs.Equal(rhs)
}

// OpenOriginal recovers the key seed with the delegator's own secret key:
// (E + V)^sk. A mismatched key silently yields a different, useless seed;
// authenticating the result is the combiner's job, not this routine's.
func (c *Capsule) OpenOriginal(delegatingSK *SecretKey) *SecretBox {
	var sharedPoint Point
	delegatingSK.withScalar(func(scalar Scalar) {
		sharedPoint = c.pointE.Add(c.pointV).Mul(scalar)
	})
	return NewSecretBox(sharedPoint.CompressedBytes())
}

// OpenReencrypted reconstructs the key seed from capsule fragments produced
// by proxies, using the receiver's secret key and the delegator's public
// key. At least the issuance threshold of correctly produced, consistent
// fragments is required; any subset of that size yields the same seed.
//
// The closed set of combination outcomes is ErrNoCapsuleFrags,
// ErrMismatchedCapsuleFrags, ErrRepeatingCapsuleFrags and
// ErrValidationFailed; cross-curve inputs are rejected up front with
// ErrCurveMismatch before combination starts. No partial secret is ever
// returned.
func (c *Capsule) OpenReencrypted(
	receivingSK *SecretKey,
	delegatingPK *PublicKey,
	cfrags []*CapsuleFrag,
) (*SecretBox, error) {
	curve := c.params.Curve()
	if receivingSK.curve.Name() != curve.Name() || delegatingPK.curve.Name() != curve.Name() {
		return nil, ErrCurveMismatch
	}

	if len(cfrags) == 0 {
		return nil, ErrNoCapsuleFrags
	}

	precursor := cfrags[0].precursor
	if !pointOnCurve(curve, precursor) {
		return nil, ErrCurveMismatch
	}
	for _, cfrag := range cfrags[1:] {
		if !cfrag.precursor.Equal(precursor) {
			return nil, ErrMismatchedCapsuleFrags
		}
	}

	pubKey := receivingSK.PublicKey().Point()

	var dhPoint Point
	receivingSK.withScalar(func(scalar Scalar) {
		dhPoint = precursor.Mul(scalar)
	})

	// Per-fragment polynomial evaluation coordinates, derived exactly as at
	// issuance time so the Lagrange weights line up with the shares.
	xs := make([]Scalar, len(cfrags))
	for i, cfrag := range cfrags {
		xs[i] = hashToPolynomialArg(curve, precursor, pubKey, dhPoint, cfrag.kfragID)
	}

	// Shamir reconstruction carried out directly on group elements
	ePrime := curve.PointIdentity()
	vPrime := curve.PointIdentity()
	for i, cfrag := range cfrags {
		lambda, ok := lambdaCoeff(curve, xs, i)
		if !ok {
			// Two fragments mapped to the same coordinate. Treated as
			// duplicated input and failed closed; an honest coordinate
			// collision is cryptographically negligible.
			return nil, ErrRepeatingCapsuleFrags
		}
		ePrime = ePrime.Add(cfrag.pointE1.Mul(lambda))
		vPrime = vPrime.Add(cfrag.pointV1.Mul(lambda))
	}

	// Blinding scalar 'd' makes the scheme non-interactive: the receiver
	// never needs to contact the delegator.
	d := hashToSharedSecret(curve, precursor, pubKey, dhPoint)

	h := hashCapsulePoints(curve, c.pointE, c.pointV)

	invD, err := d.Invert()
	if err != nil {
		// d is non-zero by construction of the hash
		return nil, ErrValidationFailed
	}

	lhs := delegatingPK.Point().Mul(c.signature.Mul(invD))
	rhs := ePrime.Mul(h).Add(vPrime)
	if !lhs.Equal(rhs) {
		return nil, ErrValidationFailed
	}

	sharedPoint := ePrime.Add(vPrime).Mul(d)
	return NewSecretBox(sharedPoint.CompressedBytes()), nil
}

// lambdaCoeff computes the i-th Lagrange basis weight at zero,
// Π_{j≠i} x_j / (x_j − x_i). Returns false when a difference is not
// invertible, i.e. two coordinates coincide.
func lambdaCoeff(curve Curve, xs []Scalar, i int) (Scalar, bool) {
	result := curve.ScalarOne()
	for j := range xs {
		if j == i {
			continue
		}
		invDiff, err := xs[j].Sub(xs[i]).Invert()
		if err != nil {
			return nil, false
		}
		result = result.Mul(xs[j]).Mul(invDiff)
	}
	return result, true
}

// Bytes serializes the capsule as pointE || pointV || signature, each field
// in its canonical fixed-width encoding. Total function; width is
// Parameters.CapsuleSize.
func (c *Capsule) Bytes() []byte {
	out := make([]byte, 0, c.params.CapsuleSize())
	out = append(out, c.pointE.CompressedBytes()...)
	out = append(out, c.pointV.CompressedBytes()...)
	out = append(out, c.signature.Bytes()...)
	return out
}

// CapsuleFromBytes parses and re-verifies a serialized capsule. This is the
// only route by which externally supplied bytes become a live Capsule; any
// byte string failing the self-verification equation is rejected.
func CapsuleFromBytes(params *Parameters, data []byte) (*Capsule, error) {
	curve := params.Curve()
	pointSize := curve.PointSize()
	scalarSize := curve.ScalarSize()

	if len(data) != params.CapsuleSize() {
		return nil, ErrCapsuleBytesLength.WithCause(
			fmt.Errorf("want %d bytes, got %d", params.CapsuleSize(), len(data)))
	}

	pointE, err := curve.PointFromBytes(data[:pointSize])
	if err != nil {
		return nil, ErrMalformedPoint.WithCause(err)
	}

	pointV, err := curve.PointFromBytes(data[pointSize : 2*pointSize])
	if err != nil {
		return nil, ErrMalformedPoint.WithCause(err)
	}

	signature, err := curve.ScalarFromBytes(data[2*pointSize : 2*pointSize+scalarSize])
	if err != nil {
		return nil, ErrMalformedScalar.WithCause(err)
	}

	capsule, ok := newVerifiedCapsule(params, pointE, pointV, signature)
	if !ok {
		return nil, ErrCapsuleSelfVerification
	}
	return capsule, nil
}

// Equal compares two capsules algebraically
func (c *Capsule) Equal(other *Capsule) bool {
	return c.pointE.Equal(other.pointE) &&
		c.pointV.Equal(other.pointV) &&
		c.signature.Equal(other.signature)
}

func (c *Capsule) String() string {
	return fmt.Sprintf("Capsule(E=%s, V=%s)", c.pointE.String(), c.pointV.String())
}
