package umbral

import (
	"fmt"
)

// CapsuleFrag is a proxy-produced partial re-encryption of a Capsule under
// one key fragment. Fragments are public values; a set of them is
// combinable only when every member shares the same precursor, i.e.
// originates from one issuance run.
type CapsuleFrag struct {
	pointE1   Point
	pointV1   Point
	precursor Point
	kfragID   KeyFragID
}

// Reencrypt transforms a capsule into a capsule fragment using one key
// fragment share. The proxy learns neither the seed nor the delegating key.
// The capsule is trusted as-is: Capsule values are verified at construction
// and cannot exist otherwise.
func Reencrypt(capsule *Capsule, kfrag *KeyFrag) *CapsuleFrag {
	return &CapsuleFrag{
		pointE1:   capsule.pointE.Mul(kfrag.key),
		pointV1:   capsule.pointV.Mul(kfrag.key),
		precursor: kfrag.precursor,
		kfragID:   kfrag.id,
	}
}

// Precursor returns the issuance run's ephemeral public point
func (cf *CapsuleFrag) Precursor() Point {
	return cf.precursor
}

// KFragID returns the identifier of the key fragment this was produced with
func (cf *CapsuleFrag) KFragID() KeyFragID {
	return cf.kfragID
}

// Equal compares two capsule fragments algebraically
func (cf *CapsuleFrag) Equal(other *CapsuleFrag) bool {
	return cf.kfragID == other.kfragID &&
		cf.pointE1.Equal(other.pointE1) &&
		cf.pointV1.Equal(other.pointV1) &&
		cf.precursor.Equal(other.precursor)
}

func (cf *CapsuleFrag) String() string {
	return fmt.Sprintf("CapsuleFrag(%s)", cf.kfragID)
}
