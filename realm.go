package realmruntime

import "github.com/dop251/goja"

// Task is a unit of deferred work executed on a realm's own run loop.
type Task interface {
	Run(r Realm)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc func(r Realm)

// Run implements Task.
func (f TaskFunc) Run(r Realm) { f(r) }

// Realm is the surface of an isolated execution context that transferables
// materialize through and delivery tasks are scheduled onto.
//
// VM, Bind and Binding must only be used from the realm's own loop
// goroutine. Schedule and OnTeardown are safe from any goroutine.
type Realm interface {
	// ID returns a stable identity for the realm, unique per process.
	ID() string

	// VM returns the realm's script engine. Loop goroutine only.
	VM() *goja.Runtime

	// Schedule enqueues task on the realm's loop and reports whether it was
	// accepted. With syncIfCurrent, the task runs inline when the caller is
	// already on this realm's loop. With duringTeardown, the task is still
	// accepted while the realm is shutting down. A task rejected because the
	// realm is gone is silently dropped; the caller gets false and nothing
	// else.
	Schedule(task Task, syncIfCurrent, duringTeardown bool) bool

	// Bind associates a realm-local object with the Transferer that knows
	// how to move it across the boundary again.
	Bind(obj *goja.Object, tr Transferer)

	// Binding looks up the Transferer previously bound to obj.
	Binding(obj *goja.Object) (Transferer, bool)

	// OnTeardown registers fn to run on the realm's loop while it is being
	// torn down, before the VM is dropped.
	OnTeardown(fn func())
}

// Transferable is a realm-independent representation of a value capable of
// materializing into any realm's local form.
//
// TransferIn must be invoked on r's loop goroutine.
type Transferable interface {
	TransferIn(r Realm) (goja.Value, error)
}

// Transferer is implemented by realm-visible objects that produce their own
// Transferable, bypassing the generic classification. Back-reference proxies
// use this so that re-transferring a proxy yields the original reference
// rather than a copy of the proxy object.
type Transferer interface {
	SelfTransferOut() (Transferable, error)
}
