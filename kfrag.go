package umbral

import (
	"encoding/hex"
	"fmt"
)

// KeyFragIDSize is the width of a key fragment identifier
const KeyFragIDSize = 32

// KeyFragID identifies one key fragment within an issuance run. IDs are
// random; the fragment's polynomial evaluation coordinate is derived from
// the ID by hashing, never from a sequential index.
type KeyFragID [KeyFragIDSize]byte

func newKeyFragID() (KeyFragID, error) {
	var id KeyFragID
	bytes, err := SecureRandom(KeyFragIDSize)
	if err != nil {
		return id, err
	}
	copy(id[:], bytes)
	return id, nil
}

// Bytes returns the identifier bytes
func (id KeyFragID) Bytes() []byte {
	return id[:]
}

func (id KeyFragID) String() string {
	return hex.EncodeToString(id[:])
}

// KeyFrag is one share of a re-encryption grant: a proxy holding it can
// transform a Capsule into a CapsuleFrag without learning the delegating
// key. The share scalar is secret and must be wiped when the grant ends.
type KeyFrag struct {
	id        KeyFragID
	key       Scalar
	precursor Point
}

// ID returns the fragment identifier
func (kf *KeyFrag) ID() KeyFragID {
	return kf.id
}

// Precursor returns the issuance run's ephemeral public point
func (kf *KeyFrag) Precursor() Point {
	return kf.precursor
}

// Zeroize wipes the share scalar
func (kf *KeyFrag) Zeroize() {
	if kf.key != nil {
		kf.key.Zeroize()
	}
}

func (kf *KeyFrag) String() string {
	return fmt.Sprintf("KeyFrag(%s)", kf.id)
}

// GenerateKFrags issues `total` key fragment shares of a re-encryption
// grant from the delegator to the receiver, any `threshold` of which
// suffice to reconstruct the encapsulated seed. All fragments of one call
// share a fresh precursor point; fragments from different calls must never
// be combined.
func GenerateKFrags(
	params *Parameters,
	delegatingSK *SecretKey,
	receivingPK *PublicKey,
	threshold int,
	total int,
) ([]*KeyFrag, error) {
	if threshold <= 0 || threshold > total {
		return nil, ErrInvalidThreshold.WithCause(
			fmt.Errorf("threshold %d, shares %d", threshold, total))
	}

	curve := params.Curve()
	if receivingPK.curve.Name() != curve.Name() || delegatingSK.curve.Name() != curve.Name() {
		return nil, ErrCurveMismatch
	}

	// Ephemeral secret binding this issuance run to the receiver
	privX, err := RandomNonZeroScalar(curve)
	if err != nil {
		return nil, ErrRandomnessFailed.WithCause(err)
	}
	defer privX.Zeroize()

	precursor := params.Generator().Mul(privX)
	dhPoint := receivingPK.Point().Mul(privX)

	d := hashToSharedSecret(curve, precursor, receivingPK.Point(), dhPoint)
	defer d.Zeroize()

	invD, err := d.Invert() // d is non-zero by construction
	if err != nil {
		return nil, ErrIssuanceFailed.WithCause(err)
	}
	defer invD.Zeroize()

	// The polynomial's constant term is the delegating key blinded by d⁻¹;
	// the combiner's final multiplication by d undoes the blinding.
	var coeff0 Scalar
	delegatingSK.withScalar(func(scalar Scalar) {
		coeff0 = scalar.Mul(invD)
	})

	polynomial, err := NewRandomPolynomial(curve, threshold-1, coeff0)
	if err != nil {
		coeff0.Zeroize()
		return nil, ErrRandomnessFailed.WithCause(err)
	}
	defer polynomial.Zeroize()

	kfrags := make([]*KeyFrag, total)
	for i := 0; i < total; i++ {
		id, err := newKeyFragID()
		if err != nil {
			return nil, ErrRandomnessFailed.WithCause(err)
		}

		shareIndex := hashToPolynomialArg(curve, precursor, receivingPK.Point(), dhPoint, id)
		kfrags[i] = &KeyFrag{
			id:        id,
			key:       polynomial.Evaluate(shareIndex),
			precursor: precursor,
		}
	}

	return kfrags, nil
}
