package bridge

import (
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/codec"
	"github.com/realmkit/realm-runtime/engine"
)

// State is the shared settlement state of one cross-realm promise, jointly
// owned by one Holder and any number of destination-side materializations.
type State struct {
	mu       sync.Mutex
	value    realmruntime.Transferable
	rejected bool
	settled  bool
	waiters  []*waiter
}

// A waiter is a destination-realm resolver parked against an unsettled
// bridge. The resolve/reject handles must only be invoked on the waiter's
// own realm loop.
type waiter struct {
	realm   realmruntime.Realm
	resolve func(any) error
	reject  func(any) error
}

// NewState creates an unsettled bridge state.
func NewState() *State {
	return &State{}
}

// Settled reports whether a terminal outcome has been recorded.
func (s *State) Settled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settled
}

// settle records the terminal outcome exactly once and schedules delivery
// to every parked waiter. produce runs inside the critical section so the
// stored value is durable before the lock is released; if produce fails,
// the failure itself becomes the outcome and the settlement is forced to a
// rejection. Calls after the first are no-ops.
func (s *State) settle(rejected bool, produce func() (realmruntime.Transferable, error)) {
	s.mu.Lock()
	if s.settled {
		s.mu.Unlock()
		return
	}
	value, err := produce()
	if err != nil {
		value = codec.FromGoError(err)
		rejected = true
	}
	s.value = value
	s.rejected = rejected
	s.settled = true
	drained := s.waiters
	s.waiters = nil
	s.mu.Unlock()

	engine.Logger().Debug("bridge settled",
		zap.Bool("rejected", rejected), zap.Int("waiters", len(drained)))

	for _, w := range drained {
		deliver(w, value, rejected)
	}
}

// TransferIn materializes the bridge in r: an immediately-settled local
// promise when the outcome is already known, otherwise a pending promise
// whose resolver is parked as a waiter. Runs on r's loop.
func (s *State) TransferIn(r realmruntime.Realm) (goja.Value, error) {
	vm := r.VM()
	p, resolve, reject := vm.NewPromise()

	s.mu.Lock()
	if s.settled {
		value, rejected := s.value, s.rejected
		s.mu.Unlock()

		local, err := value.TransferIn(r)
		if err != nil {
			_ = reject(vm.NewGoError(err))
			return vm.ToValue(p), nil
		}
		if rejected {
			_ = reject(local)
		} else {
			_ = resolve(local)
		}
		return vm.ToValue(p), nil
	}
	s.waiters = append(s.waiters, &waiter{realm: r, resolve: resolve, reject: reject})
	s.mu.Unlock()

	return vm.ToValue(p), nil
}

// deliver hands one waiter its outcome, fire and forget. A destination
// realm that is already gone drops the delivery on the floor; that is the
// scheduler's contract, not a leak here.
func deliver(w *waiter, value realmruntime.Transferable, rejected bool) {
	ok := w.realm.Schedule(&deliveryTask{
		resolve:  w.resolve,
		reject:   w.reject,
		value:    value,
		rejected: rejected,
	}, false, true)
	if !ok {
		engine.Logger().Debug("delivery dropped, destination realm is gone",
			zap.String("realm", w.realm.ID()))
	}
}

// deliveryTask performs one waiter's resolve or reject on that waiter's own
// realm loop. Ephemeral: created at settlement, run once.
type deliveryTask struct {
	resolve  func(any) error
	reject   func(any) error
	value    realmruntime.Transferable
	rejected bool
}

func (t *deliveryTask) Run(r realmruntime.Realm) {
	local, err := t.value.TransferIn(r)
	if err != nil {
		_ = t.reject(r.VM().NewGoError(err))
		return
	}
	if t.rejected {
		_ = t.reject(local)
	} else {
		_ = t.resolve(local)
	}
}
