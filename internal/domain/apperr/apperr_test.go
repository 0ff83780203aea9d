package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := NotFound("borrower %d not found", 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound to match ErrNotFound")
	}
	if errors.Is(err, ErrConflict) {
		t.Fatalf("NotFound must not match ErrConflict")
	}
	if err.Error() != "borrower 7 not found" {
		t.Fatalf("message = %q", err.Error())
	}

	wrapped := fmt.Errorf("create loan: %w", err)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("wrapped error lost its kind")
	}
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:3306: connection refused")
	err := Internal(cause)
	if err.Error() != "internal error" {
		t.Fatalf("internal error leaked cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause should still be reachable for logging")
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{Unauthorized("no session"), KindUnauthorized},
		{Invalid("validation failed", FieldError{Field: "amount", Message: "is required"}), KindInvalidInput},
		{Conflict("email taken"), KindConflict},
		{errors.New("boom"), KindInternal},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.want {
			t.Fatalf("KindOf(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}
