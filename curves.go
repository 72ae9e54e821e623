package umbral

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Curve defines the interface for elliptic curve operations
type Curve interface {
	// Metadata
	Name() string
	ScalarSize() int
	PointSize() int // compressed encoding width, used by every fixed-width layout

	// Scalar operations
	ScalarFromBytes([]byte) (Scalar, error)
	ScalarFromUniformBytes([]byte) (Scalar, error)
	ScalarRandom() (Scalar, error)
	ScalarZero() Scalar
	ScalarOne() Scalar

	// Point operations
	PointFromBytes([]byte) (Point, error)
	BasePoint() Point
	PointIdentity() Point
}

// Scalar represents a scalar value in the curve's field
type Scalar interface {
	// Serialization
	Bytes() []byte
	String() string

	// Arithmetic operations
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() (Scalar, error)

	// Comparison
	Equal(Scalar) bool
	IsZero() bool

	// Security
	Zeroize()
}

// Point represents a point on the elliptic curve
type Point interface {
	// Serialization
	Bytes() []byte
	CompressedBytes() []byte
	String() string

	// Arithmetic operations
	Add(Point) Point
	Sub(Point) Point
	Mul(Scalar) Point
	Negate() Point

	// Comparison
	Equal(Point) bool
	IsIdentity() bool
}

// CurveType represents supported curve types
type CurveType string

const (
	Secp256k1 CurveType = "secp256k1"
	Ed25519   CurveType = "ed25519"
)

// NewCurve creates a new curve instance
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case Secp256k1:
		return NewSecp256k1Curve(), nil
	case Ed25519:
		return NewEd25519Curve(), nil
	default:
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}

// Common errors
var (
	ErrInvalidScalarLength = errors.New("invalid scalar length")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalar       = errors.New("invalid scalar value")
	ErrInvalidPoint        = errors.New("invalid point")
	ErrScalarZero          = errors.New("scalar is zero")
)

// pointOnCurve reports whether a point belongs to the given curve's
// backend. Mixing backends in arithmetic would panic on type assertions,
// so callers taking externally supplied points guard with this first.
func pointOnCurve(curve Curve, point Point) bool {
	switch curve.(type) {
	case *Secp256k1Curve:
		_, ok := point.(*Secp256k1Point)
		return ok
	case *Ed25519Curve:
		_, ok := point.(*Ed25519Point)
		return ok
	}
	return false
}

// RandomNonZeroScalar draws a uniformly random scalar guaranteed non-zero.
// Ephemeral secret exponents and polynomial evaluation coordinates must be
// non-zero; a zero coordinate would degenerate Lagrange interpolation.
func RandomNonZeroScalar(curve Curve) (Scalar, error) {
	for {
		s, err := curve.ScalarRandom()
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// SecureRandom generates cryptographically secure random bytes
func SecureRandom(size int) ([]byte, error) {
	bytes := make([]byte, size)
	_, err := rand.Read(bytes)
	return bytes, err
}
