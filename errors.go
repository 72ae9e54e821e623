package umbral

import (
	"fmt"
)

// ErrorCategory represents the category of an Umbral error
type ErrorCategory string

const (
	ErrorCategoryCombination  ErrorCategory = "combination"
	ErrorCategoryConstruction ErrorCategory = "construction"
	ErrorCategoryKeyFrag      ErrorCategory = "keyfrag"
	ErrorCategoryEncryption   ErrorCategory = "encryption"
	ErrorCategoryRandomness   ErrorCategory = "randomness"
)

// Error is the structured error type returned by all fallible Umbral
// operations. Errors are returned by value and compared with errors.Is
// against the sentinel values below; there is no open error hierarchy.
type Error struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy of the error carrying the underlying cause.
// The sentinel values themselves are never mutated.
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// Is makes wrapped copies (WithCause) match their sentinel under errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// NewError creates a new Umbral error
func NewError(category ErrorCategory, code, message string) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Combination errors: the closed set of outcomes of Capsule.OpenReencrypted.
// All four are terminal and caller-recoverable (e.g. retry with a different
// fragment subset); none imply the capsule itself is corrupt.
var (
	ErrNoCapsuleFrags = NewError(
		ErrorCategoryCombination, "NO_CAPSULE_FRAGS",
		"empty capsule fragment sequence")

	ErrMismatchedCapsuleFrags = NewError(
		ErrorCategoryCombination, "MISMATCHED_CAPSULE_FRAGS",
		"capsule fragments are not pairwise consistent")

	ErrRepeatingCapsuleFrags = NewError(
		ErrorCategoryCombination, "REPEATING_CAPSULE_FRAGS",
		"some of the capsule fragments are repeated")

	ErrValidationFailed = NewError(
		ErrorCategoryCombination, "VALIDATION_FAILED",
		"internal validation of the reconstructed capsule failed")
)

// Construction errors, reported by the (de)serialization boundary
var (
	ErrCapsuleBytesLength = NewError(
		ErrorCategoryConstruction, "CAPSULE_BYTES_LENGTH",
		"serialized capsule has the wrong length")

	ErrCapsuleSelfVerification = NewError(
		ErrorCategoryConstruction, "CAPSULE_SELF_VERIFICATION",
		"capsule self-verification failed")

	ErrMalformedPoint = NewError(
		ErrorCategoryConstruction, "MALFORMED_POINT",
		"serialized curve point is malformed")

	ErrMalformedScalar = NewError(
		ErrorCategoryConstruction, "MALFORMED_SCALAR",
		"serialized curve scalar is malformed")
)

// Key fragment issuance errors
var (
	ErrInvalidThreshold = NewError(
		ErrorCategoryKeyFrag, "INVALID_THRESHOLD",
		"threshold must be positive and not exceed the share count")

	ErrCurveMismatch = NewError(
		ErrorCategoryKeyFrag, "CURVE_MISMATCH",
		"objects belong to different curves")

	ErrIssuanceFailed = NewError(
		ErrorCategoryKeyFrag, "ISSUANCE_FAILED",
		"key fragment issuance failed")
)

// Symmetric encryption errors
var (
	ErrCiphertextTooShort = NewError(
		ErrorCategoryEncryption, "CIPHERTEXT_TOO_SHORT",
		"ciphertext is shorter than the nonce")

	ErrDecryptionFailed = NewError(
		ErrorCategoryEncryption, "DECRYPTION_FAILED",
		"authenticated decryption failed")
)

// Entropy errors
var ErrRandomnessFailed = NewError(
	ErrorCategoryRandomness, "RANDOMNESS_FAILED",
	"failed to draw secure randomness")
