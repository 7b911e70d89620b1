package codec

import (
	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
)

// ErrorValue is a structurally-copyable error marker. It is what promise
// rejections and marshaling faults travel as, so that a destination realm
// always receives a real Error instance rather than an opaque host failure.
type ErrorValue struct {
	Name    string
	Message string
	Stack   string
}

// FromGoError converts a host-side failure into a copyable error marker.
func FromGoError(err error) *ErrorValue {
	return &ErrorValue{Name: "Error", Message: err.Error()}
}

// Error implements the error interface so host code can carry an ErrorValue
// directly.
func (e *ErrorValue) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// TransferIn implements realmruntime.Transferable.
func (e *ErrorValue) TransferIn(r realmruntime.Realm) (goja.Value, error) {
	return e.materialize(r.VM()), nil
}

func (e *ErrorValue) materialize(vm *goja.Runtime) goja.Value {
	ctor, ok := vm.Get(e.Name).(*goja.Object)
	if !ok {
		ctor, ok = vm.Get("Error").(*goja.Object)
	}
	if ok {
		if obj, err := vm.New(ctor, vm.ToValue(e.Message)); err == nil {
			if e.Name != "" {
				obj.Set("name", e.Name)
			}
			if e.Stack != "" {
				obj.Set("stack", e.Stack)
			}
			return obj
		}
	}

	// Error intrinsic missing or broken; fall back to a plain object
	obj := vm.NewObject()
	obj.Set("name", e.Name)
	obj.Set("message", e.Message)
	return obj
}

func exportError(obj *goja.Object) *ErrorValue {
	ev := &ErrorValue{Name: "Error"}
	if v := obj.Get("name"); v != nil && !goja.IsUndefined(v) {
		ev.Name = v.String()
	}
	if v := obj.Get("message"); v != nil && !goja.IsUndefined(v) {
		ev.Message = v.String()
	}
	if v := obj.Get("stack"); v != nil && !goja.IsUndefined(v) {
		ev.Stack = v.String()
	}
	return ev
}
