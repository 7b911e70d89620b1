package transfer

import (
	"strings"
	"testing"

	"github.com/dop251/goja"

	"github.com/realmkit/realm-runtime/errors"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		fallback Kind
		want     Options
	}{
		{name: "nil map", want: Options{}},
		{name: "empty map", raw: map[string]any{}, want: Options{}},
		{
			name: "copy",
			raw:  map[string]any{"copy": true},
			want: Options{Kind: KindCopy},
		},
		{
			name: "externalCopy",
			raw:  map[string]any{"externalCopy": true},
			want: Options{Kind: KindSnapshot},
		},
		{
			name: "reference",
			raw:  map[string]any{"reference": true},
			want: Options{Kind: KindReference},
		},
		{
			name: "promise is orthogonal",
			raw:  map[string]any{"promise": true, "copy": true},
			want: Options{Kind: KindCopy, Promise: true},
		},
		{
			name: "truthy non-bool",
			raw:  map[string]any{"copy": 1},
			want: Options{Kind: KindCopy},
		},
		{
			name: "falsy flags ignored",
			raw:  map[string]any{"copy": false, "reference": 0, "externalCopy": ""},
			want: Options{},
		},
		{
			name:     "fallback carried",
			raw:      map[string]any{},
			fallback: KindCopy,
			want:     Options{Fallback: KindCopy},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOptions(tt.raw, tt.fallback)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseOptions_Conflict(t *testing.T) {
	_, err := ParseOptions(map[string]any{"copy": true, "reference": true}, KindUnset)
	if !errors.IsKind(err, errors.KindOptionConflict) {
		t.Fatalf("got %v, want option_conflict", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "`copy`") || !strings.Contains(msg, "`reference`") {
		t.Fatalf("conflict message %q does not name the conflicting flags", msg)
	}

	_, err = ParseOptions(map[string]any{
		"copy": true, "externalCopy": true, "reference": true,
	}, KindUnset)
	if !errors.IsKind(err, errors.KindOptionConflict) {
		t.Fatalf("got %v, want option_conflict", err)
	}
}

func TestParseOptionsValue(t *testing.T) {
	vm := goja.New()

	o, err := ParseOptionsValue(vm, goja.Undefined(), KindCopy)
	if err != nil {
		t.Fatal(err)
	}
	if o != (Options{Fallback: KindCopy}) {
		t.Fatalf("undefined options = %+v", o)
	}

	v, err := vm.RunString(`({reference: true, promise: true})`)
	if err != nil {
		t.Fatal(err)
	}
	o, err = ParseOptionsValue(vm, v, KindUnset)
	if err != nil {
		t.Fatal(err)
	}
	if o.Kind != KindReference || !o.Promise {
		t.Fatalf("got %+v, want reference+promise", o)
	}

	v, err = vm.RunString(`({copy: true, externalCopy: true})`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = ParseOptionsValue(vm, v, KindUnset); !errors.IsKind(err, errors.KindOptionConflict) {
		t.Fatalf("got %v, want option_conflict", err)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		KindUnset:     "unset",
		KindCopy:      "copy",
		KindSnapshot:  "externalCopy",
		KindReference: "reference",
	} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
