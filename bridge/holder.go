package bridge

import (
	"sync/atomic"

	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/codec"
	"github.com/realmkit/realm-runtime/engine"
	"github.com/realmkit/realm-runtime/errors"
)

// Holder is the source-side half of the bridge. It observes exactly one
// originating promise in the source realm and performs the single terminal
// write into the shared State. The state pointer is swapped out on that
// write, so a settled holder retains neither the state nor the settled
// value; the teardown hook it leaves behind on the source realm holds only
// the empty shell.
type Holder struct {
	state   atomic.Pointer[State]
	source  realmruntime.Realm
	produce func(goja.Value) (realmruntime.Transferable, error)
}

// NewHolder creates a holder whose fulfillment values are classified by
// produce. The holder registers itself for abandonment on source-realm
// teardown, so an originating promise that never settles cannot leave
// destination waiters pending forever.
func NewHolder(source realmruntime.Realm, state *State, produce func(goja.Value) (realmruntime.Transferable, error)) *Holder {
	h := &Holder{source: source, produce: produce}
	h.state.Store(state)
	source.OnTeardown(h.Release)
	return h
}

// settleWith detaches the state and performs the terminal write on it.
// Exactly one caller wins the swap; the rest are no-ops.
func (h *Holder) settleWith(rejected bool, produce func() (realmruntime.Transferable, error)) {
	st := h.state.Swap(nil)
	if st == nil {
		return
	}
	st.settle(rejected, produce)
}

// Done reports whether the holder has performed its terminal write.
func (h *Holder) Done() bool {
	return h.state.Load() == nil
}

// Accept attaches the holder to a promise-shaped value. Already-settled
// promises settle the bridge synchronously; pending ones get two
// continuations, both funneling into the idempotent settlement, so a
// double fire cannot record two outcomes. Runs on the source realm's loop
// and never blocks it.
func (h *Holder) Accept(v goja.Value) error {
	p, ok := engine.AsPromise(v)
	if !ok {
		return errors.InvalidData(errors.PhaseSettle, "value is not promise-shaped")
	}

	switch p.State() {
	case goja.PromiseStateFulfilled:
		h.Resolved(p.Result())
		return nil
	case goja.PromiseStateRejected:
		h.Rejected(p.Result())
		return nil
	}

	vm := h.source.VM()
	obj := v.ToObject(vm)
	thenFn, ok := goja.AssertFunction(obj.Get("then"))
	if !ok {
		return errors.InvalidData(errors.PhaseSettle, "promise has no callable then")
	}
	onFulfilled := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		h.Resolved(call.Argument(0))
		return goja.Undefined()
	})
	onRejected := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		h.Rejected(call.Argument(0))
		return goja.Undefined()
	})
	_, err := thenFn(obj, onFulfilled, onRejected)
	return err
}

// Resolved settles the bridge with a fulfillment outcome. The value is
// classified by the holder's produce function; a classification failure
// turns the settlement into a rejection instead of surfacing here.
func (h *Holder) Resolved(v goja.Value) {
	h.settleWith(false, func() (realmruntime.Transferable, error) {
		return h.produce(v)
	})
}

// Rejected settles the bridge with a rejection outcome. The rejection value
// is normalized to a copyable form and never fails.
func (h *Holder) Rejected(v goja.Value) {
	h.settleWith(true, func() (realmruntime.Transferable, error) {
		return codec.CopyIfPrimitiveOrError(h.source.VM(), v), nil
	})
}

// Release abandons the bridge: if no settlement has been recorded by the
// time the source side lets go, every current and future observer is
// rejected with an abandonment error. Idempotent, and a no-op after a real
// settlement.
func (h *Holder) Release() {
	h.settleWith(true, func() (realmruntime.Transferable, error) {
		return &codec.ErrorValue{Name: "Error", Message: "promise was abandoned"}, nil
	})
}
