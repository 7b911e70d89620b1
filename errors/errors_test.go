package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCopy,
				Kind:   KindUnsupported,
				Path:   []string{"user", "profile", "onClick"},
				Realm:  "worker-1",
				Detail: "functions cannot be copied",
			},
			contains: []string{"[copy]", "unsupported", "user.profile.onClick", "worker-1", "functions cannot be copied"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseTransfer,
				Kind:  KindNonTransferable,
			},
			contains: []string{"[transfer]", "non_transferable"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSettle,
				Kind:   KindInvalidData,
				Detail: "settled value vanished",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[settle]", "invalid_data", "settled value vanished", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDeliver,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseParse,
		Kind:   KindOptionConflict,
		Detail: "some detail",
	}

	if !errors.Is(err, &Error{Phase: PhaseParse, Kind: KindOptionConflict}) {
		t.Error("Is should match on Phase+Kind")
	}
	if errors.Is(err, &Error{Phase: PhaseParse, Kind: KindInvalidData}) {
		t.Error("Is should not match a different Kind")
	}
	if errors.Is(err, &Error{Phase: PhaseTransfer, Kind: KindOptionConflict}) {
		t.Error("Is should not match a different Phase")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseCopy, KindCircular).
		Path("a", "b").
		Realm("main").
		Value(42).
		Cause(cause).
		Detail("cycle via %s", "self").
		Build()

	if err.Phase != PhaseCopy || err.Kind != KindCircular {
		t.Fatalf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if len(err.Path) != 2 || err.Path[1] != "b" {
		t.Fatalf("unexpected path: %v", err.Path)
	}
	if err.Realm != "main" {
		t.Fatalf("unexpected realm: %s", err.Realm)
	}
	if err.Value != 42 {
		t.Fatalf("unexpected value: %v", err.Value)
	}
	if err.Detail != "cycle via self" {
		t.Fatalf("unexpected detail: %s", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not in chain")
	}
}

func TestOptionConflict(t *testing.T) {
	err := OptionConflict("copy", "externalCopy", "reference")
	msg := err.Error()
	for _, s := range []string{"`copy`", "`externalCopy`", "`reference`", "only one of"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q missing %q", msg, s)
		}
	}
	if !IsOptionConflict(err) {
		t.Error("IsOptionConflict failed")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if msg := NonTransferable().Error(); !strings.Contains(msg, "a non-transferable value was passed") {
		t.Errorf("NonTransferable message: %q", msg)
	}
	if msg := Abandoned().Error(); !strings.Contains(msg, "promise was abandoned") {
		t.Errorf("Abandoned message: %q", msg)
	}
	if err := TornDown("w1"); err.Realm != "w1" || err.Kind != KindTornDown {
		t.Errorf("TornDown: %+v", err)
	}
	if err := WrongRealm("a", "b"); !strings.Contains(err.Error(), "realm a, not b") {
		t.Errorf("WrongRealm message: %q", err.Error())
	}
	if err := DepthExceeded([]string{"x"}, 64); !strings.Contains(err.Error(), "64") {
		t.Errorf("DepthExceeded message: %q", err.Error())
	}
}

func TestIsKind_WrappedChain(t *testing.T) {
	inner := Abandoned()
	outer := fmt.Errorf("delivery failed: %w", inner)

	if !IsAbandoned(outer) {
		t.Error("IsAbandoned should see through fmt wrapping")
	}
	if IsNonTransferable(outer) {
		t.Error("IsNonTransferable should not match an abandonment")
	}
	if IsKind(nil, KindAbandoned) {
		t.Error("nil error should never match")
	}
}
