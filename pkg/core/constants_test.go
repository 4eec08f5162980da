package core

import (
	"errors"
	"testing"
)

func TestErrInvalidQuantity(t *testing.T) {
	if ErrInvalidQuantity == nil {
		t.Fatal("ErrInvalidQuantity is nil")
	}
	if ErrInvalidQuantity.Error() != "invalid quantity" {
		t.Errorf("Error() = %q, want %q", ErrInvalidQuantity.Error(), "invalid quantity")
	}
	if !errors.Is(ErrInvalidQuantity, ErrInvalidQuantity) {
		t.Error("ErrInvalidQuantity does not match itself with errors.Is")
	}
}

func TestInvariantErrorFormatsMessage(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("recovered value = %T, want *InvariantError", r)
		}
		want := "overfill: order 7 has 2 remaining, fill requested 5"
		if err.Error() != want {
			t.Errorf("Error() = %q, want %q", err.Error(), want)
		}
	}()

	panicInvariant("overfill: order %d has %d remaining, fill requested %d", 7, 2, 5)
}
