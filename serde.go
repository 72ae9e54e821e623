package umbral

import (
	"encoding/base64"
)

// Text wrapping for interchange. Layered on top of the fixed binary layout;
// the byte contract itself never changes.

// CapsuleToBase64 encodes a capsule's canonical bytes as standard base64
func CapsuleToBase64(capsule *Capsule) string {
	return base64.StdEncoding.EncodeToString(capsule.Bytes())
}

// CapsuleFromBase64 decodes and re-verifies a base64-wrapped capsule
func CapsuleFromBase64(params *Parameters, encoded string) (*Capsule, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrCapsuleBytesLength.WithCause(err)
	}
	return CapsuleFromBytes(params, data)
}
