package errors

import (
	"fmt"
	"testing"
)

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain sentinel", err: ErrKo, want: "ko"},
		{name: "wrapped sentinel", err: fmt.Errorf("place (3,3): %w", ErrSuicide), want: "suicide"},
		{name: "infrastructure", err: ErrInternal, want: "internal"},
		{name: "foreign error", err: fmt.Errorf("redis down"), want: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRejection(t *testing.T) {
	if !IsRejection(fmt.Errorf("wrap: %w", ErrWrongPhase)) {
		t.Fatalf("expected wrong_phase to be a rejection")
	}
	if IsRejection(ErrGameNotFound) {
		t.Fatalf("expected game not found to be an infrastructure error")
	}
}
