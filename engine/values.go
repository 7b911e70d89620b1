package engine

import (
	"github.com/dop251/goja"
)

// AsPromise returns the promise behind v, if v is promise-shaped.
func AsPromise(v goja.Value) (*goja.Promise, bool) {
	if v == nil {
		return nil, false
	}
	p, ok := v.Export().(*goja.Promise)
	return p, ok
}

// IsPrimitive reports whether v is a realm-independent primitive: boolean,
// number, string, null or undefined.
func IsPrimitive(v goja.Value) bool {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return true
	}
	// Objects, boxed primitives included, are never primitive.
	if _, isObj := v.(*goja.Object); isObj {
		return false
	}
	switch v.Export().(type) {
	case bool, string, int64, float64:
		return true
	}
	return false
}

// IsError reports whether v is an instance of vm's Error intrinsic.
func IsError(vm *goja.Runtime, v goja.Value) bool {
	if v == nil {
		return false
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return false
	}
	ctor, ok := vm.Get("Error").(*goja.Object)
	if !ok {
		return false
	}
	return vm.InstanceOf(obj, ctor)
}

// TypeOf returns the JavaScript typeof string for v.
func TypeOf(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "object"
	}
	// Symbols must be checked on the value itself; Export stringifies them.
	if _, ok := v.(*goja.Symbol); ok {
		return "symbol"
	}
	switch v.Export().(type) {
	case bool:
		return "boolean"
	case string:
		return "string"
	case int64, float64:
		return "number"
	}
	if _, ok := goja.AssertFunction(v); ok {
		return "function"
	}
	return "object"
}
