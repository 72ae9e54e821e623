package umbral

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(ErrorCategoryKeyFrag, "TEST_CODE", "something went wrong")
	if got := err.Error(); got != "[keyfrag:TEST_CODE] something went wrong" {
		t.Fatalf("Unexpected error string: %q", got)
	}

	wrapped := err.WithCause(fmt.Errorf("underlying"))
	if !strings.Contains(wrapped.Error(), "underlying") {
		t.Fatalf("Cause missing from error string: %q", wrapped.Error())
	}
}

func TestErrorWithCauseMatchesSentinel(t *testing.T) {
	cause := fmt.Errorf("entropy exhausted")
	wrapped := ErrRandomnessFailed.WithCause(cause)

	if !errors.Is(wrapped, ErrRandomnessFailed) {
		t.Fatal("Wrapped copy does not match its sentinel")
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("Wrapped copy does not unwrap to its cause")
	}
	if ErrRandomnessFailed.Cause != nil {
		t.Fatal("WithCause mutated the sentinel")
	}
}

func TestErrorSentinelsAreDistinct(t *testing.T) {
	sentinels := []*Error{
		ErrNoCapsuleFrags,
		ErrMismatchedCapsuleFrags,
		ErrRepeatingCapsuleFrags,
		ErrValidationFailed,
		ErrCapsuleBytesLength,
		ErrCapsuleSelfVerification,
		ErrMalformedPoint,
		ErrMalformedScalar,
		ErrInvalidThreshold,
		ErrCurveMismatch,
		ErrIssuanceFailed,
		ErrCiphertextTooShort,
		ErrDecryptionFailed,
		ErrRandomnessFailed,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if (i == j) != errors.Is(a, b) {
				t.Fatalf("Sentinels %d and %d compare as %v", i, j, errors.Is(a, b))
			}
		}
	}
}

func TestIssuanceFailureCategory(t *testing.T) {
	// Issuance-time failures belong to the key fragment category, not the
	// combiner's closed outcome set
	if ErrIssuanceFailed.Category != ErrorCategoryKeyFrag {
		t.Fatalf("ErrIssuanceFailed has category %q, want %q",
			ErrIssuanceFailed.Category, ErrorCategoryKeyFrag)
	}
	if errors.Is(ErrIssuanceFailed, ErrValidationFailed) {
		t.Fatal("ErrIssuanceFailed matches a combination sentinel")
	}
}
