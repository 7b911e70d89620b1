package transfer

import (
	"github.com/dop251/goja"

	"github.com/realmkit/realm-runtime/errors"
)

// Kind selects a transfer representation.
type Kind int

const (
	KindUnset Kind = iota
	KindCopy
	KindSnapshot
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindSnapshot:
		return "externalCopy"
	case KindReference:
		return "reference"
	default:
		return "unset"
	}
}

// Options drives the classifier. Kind is the explicit representation,
// Fallback applies when Kind is unset and no implicit representation
// matches. Promise is orthogonal to both.
type Options struct {
	Kind     Kind
	Fallback Kind
	Promise  bool
}

// ParseOptions reads the transfer flags out of a raw options map. At most
// one of copy, externalCopy and reference may be truthy.
func ParseOptions(raw map[string]any, fallback Kind) (Options, error) {
	o := Options{Fallback: fallback}
	if raw == nil {
		return o, nil
	}

	var set []string
	if truthy(raw["copy"]) {
		o.Kind = KindCopy
		set = append(set, "copy")
	}
	if truthy(raw["externalCopy"]) {
		o.Kind = KindSnapshot
		set = append(set, "externalCopy")
	}
	if truthy(raw["reference"]) {
		o.Kind = KindReference
		set = append(set, "reference")
	}
	if len(set) > 1 {
		return Options{}, errors.OptionConflict(set...)
	}

	o.Promise = truthy(raw["promise"])
	return o, nil
}

// ParseOptionsValue parses an options object coming from script. An absent,
// undefined or null value yields zero Options carrying the fallback.
func ParseOptionsValue(vm *goja.Runtime, v goja.Value, fallback Kind) (Options, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return Options{Fallback: fallback}, nil
	}

	obj := v.ToObject(vm)
	raw := make(map[string]any, 4)
	for _, name := range []string{"copy", "externalCopy", "reference", "promise"} {
		if pv := obj.Get(name); pv != nil {
			raw[name] = pv.ToBoolean()
		}
	}
	return ParseOptions(raw, fallback)
}

// truthy follows script semantics for flag values that arrive as plain Go
// data instead of goja values.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
