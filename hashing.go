package umbral

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Domain separation tags. Each hash role gets its own tag so that no two
// uses of the underlying BLAKE2b primitive can collide across contexts.
const (
	dstCapsulePoints = "UMBRAL_CAPSULE_POINTS"
	dstPolynomialArg = "UMBRAL_POLYNOMIAL_ARG"
	dstSharedSecret  = "UMBRAL_SHARED_SECRET"
	dstKeySeedKDF    = "UMBRAL_KEY_SEED_KDF"
)

// domainHash digests the transcript elements under a domain tag. Every
// element is length-prefixed to keep the transcript unambiguous.
func domainHash(curve Curve, dst string, elements ...[]byte) []byte {
	hasher, _ := blake2b.New256(nil)
	hasher.Write([]byte(dst))
	hasher.Write([]byte(curve.Name()))

	for _, element := range elements {
		lengthBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(lengthBytes, uint32(len(element)))
		hasher.Write(lengthBytes)
		hasher.Write(element)
	}

	return hasher.Sum(nil)
}

// hashToScalar reduces a domain-separated digest to a scalar
func hashToScalar(curve Curve, dst string, elements ...[]byte) Scalar {
	digest := domainHash(curve, dst, elements...)
	scalar, _ := curve.ScalarFromUniformBytes(digest) // digest width is fixed
	return scalar
}

// hashToNonZeroScalar is hashToScalar with a rejection loop: the counter is
// appended to the transcript until the reduction is non-zero. One iteration
// suffices except with negligible probability.
func hashToNonZeroScalar(curve Curve, dst string, elements ...[]byte) Scalar {
	for counter := 0; ; counter++ {
		withCounter := make([][]byte, 0, len(elements)+1)
		withCounter = append(withCounter, elements...)
		withCounter = append(withCounter, []byte{byte(counter)})

		scalar := hashToScalar(curve, dst, withCounter...)
		if !scalar.IsZero() {
			return scalar
		}
	}
}

// hashCapsulePoints computes the capsule self-check scalar h = H1(E, V)
func hashCapsulePoints(curve Curve, pointE, pointV Point) Scalar {
	return hashToScalar(curve, dstCapsulePoints,
		pointE.CompressedBytes(), pointV.CompressedBytes())
}

// hashToPolynomialArg computes a fragment's polynomial evaluation
// coordinate x = H2(precursor, pub, dh, kfragID), non-zero by construction.
func hashToPolynomialArg(curve Curve, precursor, pub, dhPoint Point, kfragID KeyFragID) Scalar {
	return hashToNonZeroScalar(curve, dstPolynomialArg,
		precursor.CompressedBytes(), pub.CompressedBytes(),
		dhPoint.CompressedBytes(), kfragID.Bytes())
}

// hashToSharedSecret computes the non-interactive blinding scalar
// d = H3(precursor, pub, dh), non-zero so that it is always invertible.
func hashToSharedSecret(curve Curve, precursor, pub, dhPoint Point) Scalar {
	return hashToNonZeroScalar(curve, dstSharedSecret,
		precursor.CompressedBytes(), pub.CompressedBytes(),
		dhPoint.CompressedBytes())
}
