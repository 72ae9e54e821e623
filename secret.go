package umbral

import (
	"crypto/subtle"
)

// SecretBox owns a secret byte buffer for its entire lifetime. The bytes are
// reachable only through WithBytes, comparison is constant-time, default
// formatting is redacted, and Zeroize wipes the backing memory. Callers must
// call Zeroize when the secret goes out of scope.
type SecretBox struct {
	data []byte
}

// NewSecretBox takes ownership of data. The caller must not retain or read
// the slice afterwards.
func NewSecretBox(data []byte) *SecretBox {
	return &SecretBox{data: data}
}

// Size returns the length of the contained secret.
func (sb *SecretBox) Size() int {
	return len(sb.data)
}

// WithBytes exposes the secret to f for the duration of the call. The slice
// must not escape f.
func (sb *SecretBox) WithBytes(f func(data []byte) error) error {
	return f(sb.data)
}

// Equal compares two secrets in constant time.
func (sb *SecretBox) Equal(other *SecretBox) bool {
	if len(sb.data) != len(other.data) {
		return false
	}
	return subtle.ConstantTimeCompare(sb.data, other.data) == 1
}

// Zeroize wipes the backing memory.
func (sb *SecretBox) Zeroize() {
	ZeroizeBytes(sb.data)
	sb.data = nil
}

// String redacts the secret from default formatting.
func (sb *SecretBox) String() string {
	return "SecretBox(...)"
}

// GoString redacts the secret from %#v formatting.
func (sb *SecretBox) GoString() string {
	return sb.String()
}
