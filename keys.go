package umbral

import (
	"fmt"
)

// SecretKey holds a non-zero secret scalar. The scalar is reachable only
// through withScalar; default formatting is redacted.
type SecretKey struct {
	curve  Curve
	scalar Scalar
	pk     *PublicKey
}

// GenSecretKey generates a fresh secret key on the given curve
func GenSecretKey(curve Curve) (*SecretKey, error) {
	scalar, err := RandomNonZeroScalar(curve)
	if err != nil {
		return nil, ErrRandomnessFailed.WithCause(err)
	}
	return newSecretKey(curve, scalar), nil
}

// SecretKeyFromBytes rebuilds a secret key from its canonical scalar bytes
func SecretKeyFromBytes(curve Curve, data []byte) (*SecretKey, error) {
	scalar, err := curve.ScalarFromBytes(data)
	if err != nil {
		return nil, ErrMalformedScalar.WithCause(err)
	}
	if scalar.IsZero() {
		return nil, ErrMalformedScalar.WithCause(ErrScalarZero)
	}
	return newSecretKey(curve, scalar), nil
}

func newSecretKey(curve Curve, scalar Scalar) *SecretKey {
	return &SecretKey{
		curve:  curve,
		scalar: scalar,
		pk:     &PublicKey{curve: curve, point: curve.BasePoint().Mul(scalar)},
	}
}

// PublicKey returns the paired public key
func (sk *SecretKey) PublicKey() *PublicKey {
	return sk.pk
}

// withScalar exposes the secret scalar to f for the duration of the call.
// The scalar must not escape f.
func (sk *SecretKey) withScalar(f func(scalar Scalar)) {
	f(sk.scalar)
}

// Zeroize wipes the secret scalar
func (sk *SecretKey) Zeroize() {
	if sk.scalar != nil {
		sk.scalar.Zeroize()
	}
}

// String redacts the secret from default formatting
func (sk *SecretKey) String() string {
	return fmt.Sprintf("SecretKey(%s)", sk.curve.Name())
}

// GoString redacts the secret from %#v formatting
func (sk *SecretKey) GoString() string {
	return sk.String()
}

// PublicKey wraps a curve point identifying a key pair
type PublicKey struct {
	curve Curve
	point Point
}

// PublicKeyFromBytes parses a compressed public key point
func PublicKeyFromBytes(curve Curve, data []byte) (*PublicKey, error) {
	point, err := curve.PointFromBytes(data)
	if err != nil {
		return nil, ErrMalformedPoint.WithCause(err)
	}
	return &PublicKey{curve: curve, point: point}, nil
}

// Bytes returns the compressed point encoding
func (pk *PublicKey) Bytes() []byte {
	return pk.point.CompressedBytes()
}

// Point returns the underlying curve point
func (pk *PublicKey) Point() Point {
	return pk.point
}

// Equal compares two public keys
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.point.Equal(other.point)
}

func (pk *PublicKey) String() string {
	return fmt.Sprintf("PublicKey(%s)", pk.point.String())
}
