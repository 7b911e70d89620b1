package reference

import (
	"fmt"

	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/bridge"
	"github.com/realmkit/realm-runtime/codec"
	"github.com/realmkit/realm-runtime/engine"
	"github.com/realmkit/realm-runtime/errors"
)

// Reference is a handle to a value owned by its origin realm. It is both a
// Transferable and a Transferer, so a materialized proxy transfers onward as
// the same handle.
type Reference struct {
	origin realmruntime.Realm
	value  goja.Value
	typ    string
}

// Wrap captures v as a back-reference. Must be called on the origin realm's
// loop; the typeof string is frozen here.
func Wrap(origin realmruntime.Realm, v goja.Value) *Reference {
	return &Reference{origin: origin, value: v, typ: engine.TypeOf(v)}
}

// Origin returns the realm that owns the referenced value.
func (ref *Reference) Origin() realmruntime.Realm { return ref.origin }

// Type returns the typeof string captured at wrap time.
func (ref *Reference) Type() string { return ref.typ }

// SelfTransferOut lets a bound proxy re-transfer as the original handle.
func (ref *Reference) SelfTransferOut() (realmruntime.Transferable, error) {
	return ref, nil
}

// TransferIn yields the original value in the origin realm and a proxy
// everywhere else. The proxy is registered in dst's bindings table so it
// keeps its transfer capability.
func (ref *Reference) TransferIn(dst realmruntime.Realm) (goja.Value, error) {
	if dst.ID() == ref.origin.ID() {
		return ref.value, nil
	}

	vm := dst.VM()
	proxy := vm.NewObject()
	_ = proxy.Set("typeof", ref.typ)
	_ = proxy.Set("deref", func() (goja.Value, error) {
		return nil, errors.WrongRealm(ref.origin.ID(), dst.ID())
	})
	_ = proxy.Set("get", func(name string) (goja.Value, error) {
		return ref.getAsync(dst, name)
	})
	dst.Bind(proxy, ref)
	return proxy, nil
}

// getAsync reads a property of the referenced value on the origin realm's
// loop and funnels the result to dst through the promise bridge. Runs on
// dst's loop.
func (ref *Reference) getAsync(dst realmruntime.Realm, name string) (goja.Value, error) {
	st := bridge.NewState()
	origin := ref.origin
	h := bridge.NewHolder(origin, st, func(v goja.Value) (realmruntime.Transferable, error) {
		return codec.CopyIfPrimitiveOrError(origin.VM(), v), nil
	})

	ok := origin.Schedule(realmruntime.TaskFunc(func(r realmruntime.Realm) {
		v, err := readProperty(r.VM(), ref.value, name)
		if err != nil {
			h.Rejected(r.VM().NewGoError(err))
			return
		}
		h.Resolved(v)
	}), false, false)
	if !ok {
		h.Release()
	}

	return st.TransferIn(dst)
}

func readProperty(vm *goja.Runtime, v goja.Value, name string) (out goja.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.InvalidData(errors.PhaseTransfer,
				fmt.Sprintf("property read failed: %v", rec))
		}
	}()
	return v.ToObject(vm).Get(name), nil
}
