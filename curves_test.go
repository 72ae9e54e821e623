package umbral

import (
	"bytes"
	"errors"
	"testing"
)

func TestScalarArithmetic(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		a, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		b, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}

		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatal("Scalar addition is not commutative")
		}
		if !a.Sub(a).IsZero() {
			t.Fatal("a - a is not zero")
		}
		if !a.Add(curve.ScalarZero()).Equal(a) {
			t.Fatal("Zero is not the additive identity")
		}
		if !a.Mul(curve.ScalarOne()).Equal(a) {
			t.Fatal("One is not the multiplicative identity")
		}
		if !a.Negate().Add(a).IsZero() {
			t.Fatal("a + (-a) is not zero")
		}

		inv, err := a.Invert()
		if err != nil {
			t.Fatalf("Inversion failed: %v", err)
		}
		if !a.Mul(inv).Equal(curve.ScalarOne()) {
			t.Fatal("a * a^-1 is not one")
		}

		if _, err := curve.ScalarZero().Invert(); !errors.Is(err, ErrScalarZero) {
			t.Fatal("Inverting zero did not fail")
		}
	})
}

func TestScalarSerialization(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		a, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}

		data := a.Bytes()
		if len(data) != curve.ScalarSize() {
			t.Fatalf("Scalar serializes to %d bytes, want %d", len(data), curve.ScalarSize())
		}

		back, err := curve.ScalarFromBytes(data)
		if err != nil {
			t.Fatalf("Deserialization failed: %v", err)
		}
		if !a.Equal(back) {
			t.Fatal("Round-tripped scalar differs")
		}

		if _, err := curve.ScalarFromBytes(data[:16]); !errors.Is(err, ErrInvalidScalarLength) {
			t.Fatal("Short scalar bytes were accepted")
		}
	})
}

func TestPointArithmetic(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		g := curve.BasePoint()

		a, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		b, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}

		// g^(a+b) == g^a + g^b
		lhs := g.Mul(a.Add(b))
		rhs := g.Mul(a).Add(g.Mul(b))
		if !lhs.Equal(rhs) {
			t.Fatal("Scalar multiplication does not distribute over addition")
		}

		// (g^a)^b == (g^b)^a
		if !g.Mul(a).Mul(b).Equal(g.Mul(b).Mul(a)) {
			t.Fatal("Iterated scalar multiplication is not commutative")
		}

		p := g.Mul(a)
		if !p.Sub(p).IsIdentity() {
			t.Fatal("p - p is not the identity")
		}
		if !p.Add(curve.PointIdentity()).Equal(p) {
			t.Fatal("Identity is not neutral for addition")
		}
		if !curve.PointIdentity().IsIdentity() {
			t.Fatal("PointIdentity is not the identity")
		}
	})
}

func TestPointSerialization(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		a, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		p := curve.BasePoint().Mul(a)

		data := p.CompressedBytes()
		if len(data) != curve.PointSize() {
			t.Fatalf("Point serializes to %d bytes, want %d", len(data), curve.PointSize())
		}

		back, err := curve.PointFromBytes(data)
		if err != nil {
			t.Fatalf("Deserialization failed: %v", err)
		}
		if !p.Equal(back) {
			t.Fatal("Round-tripped point differs")
		}

		if _, err := curve.PointFromBytes(data[:7]); !errors.Is(err, ErrInvalidPointLength) {
			t.Fatal("Short point bytes were accepted")
		}
	})
}

func TestScalarSubLeavesOperandsUntouched(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		a, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		b, err := curve.ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}

		aBytes := a.Bytes()
		bBytes := b.Bytes()

		diff := a.Sub(b)

		if !bytes.Equal(a.Bytes(), aBytes) {
			t.Fatal("Sub mutated its receiver")
		}
		if !bytes.Equal(b.Bytes(), bBytes) {
			t.Fatal("Sub mutated its operand")
		}
		if !diff.Add(b).Equal(a) {
			t.Fatal("(a - b) + b != a")
		}

		// Repeated subtraction against the same operand must agree, which
		// fails if either call corrupts an input
		if !a.Sub(b).Equal(diff) {
			t.Fatal("Sub is not repeatable on the same inputs")
		}
	})
}

func TestScalarZeroizeWipesBackingValue(t *testing.T) {
	t.Run("secp256k1", func(t *testing.T) {
		s, err := NewSecp256k1Curve().ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		inner := s.(*Secp256k1Scalar).inner

		s.Zeroize()

		if !inner.IsZero() {
			t.Fatal("Backing allocation still holds the secret after Zeroize")
		}
	})

	t.Run("ed25519", func(t *testing.T) {
		s, err := NewEd25519Curve().ScalarRandom()
		if err != nil {
			t.Fatalf("Failed to draw scalar: %v", err)
		}
		inner := s.(*Ed25519Scalar).inner

		s.Zeroize()

		// The wipe must hit the original allocation, not just swap the
		// pointer held by the wrapper
		for i, b := range inner.Bytes() {
			if b != 0 {
				t.Fatalf("Backing allocation byte %d still holds the secret after Zeroize", i)
			}
		}
	})
}

func TestEqualAcrossBackends(t *testing.T) {
	secp := NewSecp256k1Curve()
	ed := NewEd25519Curve()

	if secp.ScalarOne().Equal(ed.ScalarOne()) {
		t.Fatal("Scalars of different backends compare equal")
	}
	if ed.ScalarOne().Equal(secp.ScalarOne()) {
		t.Fatal("Scalars of different backends compare equal")
	}
	if secp.BasePoint().Equal(ed.BasePoint()) {
		t.Fatal("Points of different backends compare equal")
	}
	if ed.BasePoint().Equal(secp.BasePoint()) {
		t.Fatal("Points of different backends compare equal")
	}

	if !pointOnCurve(secp, secp.BasePoint()) || pointOnCurve(secp, ed.BasePoint()) {
		t.Fatal("pointOnCurve misclassifies secp256k1 points")
	}
	if !pointOnCurve(ed, ed.BasePoint()) || pointOnCurve(ed, secp.BasePoint()) {
		t.Fatal("pointOnCurve misclassifies ed25519 points")
	}
}

func TestRandomNonZeroScalar(t *testing.T) {
	testCurves(t, func(t *testing.T, curve Curve) {
		for i := 0; i < 16; i++ {
			s, err := RandomNonZeroScalar(curve)
			if err != nil {
				t.Fatalf("Failed to draw scalar: %v", err)
			}
			if s.IsZero() {
				t.Fatal("RandomNonZeroScalar returned zero")
			}
		}
	})
}

func TestNewCurve(t *testing.T) {
	for _, curveType := range []CurveType{Secp256k1, Ed25519} {
		curve, err := NewCurve(curveType)
		if err != nil {
			t.Fatalf("NewCurve(%s) failed: %v", curveType, err)
		}
		if curve.Name() != string(curveType) {
			t.Fatalf("Curve name %q does not match type %q", curve.Name(), curveType)
		}
	}

	if _, err := NewCurve("p-384"); err == nil {
		t.Fatal("Unsupported curve type was accepted")
	}
}
