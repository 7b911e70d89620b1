package codec

import (
	"strconv"

	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/engine"
	"github.com/realmkit/realm-runtime/errors"
)

// maxDepth bounds value-graph traversal.
const maxDepth = 64

// Undefined marks the JS undefined value inside a copied tree; nil means
// null.
type Undefined struct{}

// Copied is a deep, realm-independent clone of a value graph. It
// materializes by re-cloning into each destination realm, so no two realms
// ever observe the same backing storage.
type Copied struct {
	root any
}

// Copy deep-clones v into a realm-independent tree. vm must be the runtime
// v belongs to.
func Copy(vm *goja.Runtime, v goja.Value) (*Copied, error) {
	root, err := toTree(vm, v, nil, make(map[*goja.Object]bool), 0)
	if err != nil {
		return nil, err
	}
	return &Copied{root: root}, nil
}

// CopyIfPrimitive produces the cheap fast-path copy for realm-independent
// primitives (boolean, number, string, null, undefined), or reports false
// without touching the fallback chain.
func CopyIfPrimitive(v goja.Value) (realmruntime.Transferable, bool) {
	if v == nil || goja.IsUndefined(v) {
		return &Copied{root: Undefined{}}, true
	}
	if goja.IsNull(v) {
		return &Copied{root: nil}, true
	}
	// Boxed primitives (new Number(5), new String("x")) are objects and
	// stay with the fallback chain; Export would silently unbox them.
	if _, isObj := v.(*goja.Object); isObj {
		return nil, false
	}
	switch ev := v.Export().(type) {
	case bool, string, int64, float64:
		return &Copied{root: ev}, true
	}
	return nil, false
}

// CopyIfPrimitiveOrError always succeeds: primitives and Error instances
// copy structurally, other values fall back to a full deep copy, and
// anything that still does not copy is normalized to an error marker
// carrying the value's string form.
func CopyIfPrimitiveOrError(vm *goja.Runtime, v goja.Value) realmruntime.Transferable {
	if t, ok := CopyIfPrimitive(v); ok {
		return t
	}
	if obj, ok := v.(*goja.Object); ok && engine.IsError(vm, v) {
		return exportError(obj)
	}
	if c, err := Copy(vm, v); err == nil {
		return c
	}
	return &ErrorValue{Name: "Error", Message: safeString(v)}
}

// TransferIn implements realmruntime.Transferable.
func (c *Copied) TransferIn(r realmruntime.Realm) (goja.Value, error) {
	return fromTree(r.VM(), c.root), nil
}

// Root returns the underlying realm-independent tree. Useful for host-side
// inspection without a realm.
func (c *Copied) Root() any { return c.root }

func toTree(vm *goja.Runtime, v goja.Value, path []string, seen map[*goja.Object]bool, depth int) (any, error) {
	if depth > maxDepth {
		return nil, errors.DepthExceeded(path, maxDepth)
	}
	if v == nil || goja.IsUndefined(v) {
		return Undefined{}, nil
	}
	if goja.IsNull(v) {
		return nil, nil
	}

	switch ev := v.Export().(type) {
	case bool, string, int64, float64:
		return ev, nil
	}

	if _, isFn := goja.AssertFunction(v); isFn {
		return nil, errors.Unsupported(errors.PhaseCopy, path, "functions cannot be copied")
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, errors.Unsupported(errors.PhaseCopy, path, "cannot copy a "+engine.TypeOf(v))
	}
	if seen[obj] {
		return nil, errors.Circular(errors.PhaseCopy, path)
	}
	seen[obj] = true
	defer delete(seen, obj)

	if engine.IsError(vm, v) {
		return exportError(obj), nil
	}

	if obj.ClassName() == "Array" {
		length := int(obj.Get("length").ToInteger())
		out := make([]any, length)
		for i := 0; i < length; i++ {
			el, err := toTree(vm, obj.Get(strconv.Itoa(i)), childPath(path, strconv.Itoa(i)), seen, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = el
		}
		return out, nil
	}

	keys := obj.Keys()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		el, err := toTree(vm, obj.Get(k), childPath(path, k), seen, depth+1)
		if err != nil {
			return nil, err
		}
		out[k] = el
	}
	return out, nil
}

func fromTree(vm *goja.Runtime, node any) goja.Value {
	switch n := node.(type) {
	case nil:
		return goja.Null()
	case Undefined:
		return goja.Undefined()
	case *ErrorValue:
		return n.materialize(vm)
	case []any:
		items := make([]any, len(n))
		for i, child := range n {
			items[i] = fromTree(vm, child)
		}
		return vm.NewArray(items...)
	case map[string]any:
		obj := vm.NewObject()
		for k, child := range n {
			obj.Set(k, fromTree(vm, child))
		}
		return obj
	default:
		return vm.ToValue(n)
	}
}

func childPath(path []string, elem string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}

func safeString(v goja.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = "<unprintable value>"
		}
	}()
	return v.String()
}
