package realm

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"go.uber.org/zap"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/engine"
	"github.com/realmkit/realm-runtime/errors"
)

const defaultQueueDepth = 64

// Config controls realm construction.
type Config struct {
	// Name tags the realm in logs and errors. Defaults to a prefix of the
	// realm ID.
	Name string

	// QueueDepth is the task queue's initial capacity. The queue grows as
	// needed; enqueueing never blocks the caller. Zero means the default
	// (64).
	QueueDepth int

	// MaxCallStackSize caps script recursion depth. Zero means the engine
	// default.
	MaxCallStackSize int

	// EvalTimeout interrupts RunScript calls running longer than this.
	// Zero disables the watchdog.
	EvalTimeout time.Duration

	// EnableConsole installs a console object routed to the library logger.
	EnableConsole bool
}

const (
	stateRunning int32 = iota
	stateClosing
	stateClosed
)

// Realm is an isolated execution context: one goja runtime owned by one loop
// goroutine. It implements realmruntime.Realm.
type Realm struct {
	id   string
	name string
	cfg  Config
	vm   *goja.Runtime

	queueMu sync.Mutex
	queue   []realmruntime.Task
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}

	state  atomic.Int32
	loopID atomic.Uint64

	bindMu   sync.Mutex
	bindings map[*goja.Object]realmruntime.Transferer

	tearMu    sync.Mutex
	teardowns []func()

	closeOnce sync.Once
}

// New creates a realm and starts its loop goroutine.
func New(cfg Config) *Realm {
	id := uuid.NewString()
	name := cfg.Name
	if name == "" {
		name = id[:8]
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = defaultQueueDepth
	}

	r := &Realm{
		id:   id,
		name: name,
		cfg:  cfg,
		vm: engine.NewVM(engine.VMConfig{
			MaxCallStackSize: cfg.MaxCallStackSize,
			EnableConsole:    cfg.EnableConsole,
			ConsoleTag:       name,
		}),
		queue:    make([]realmruntime.Task, 0, depth),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		bindings: make(map[*goja.Object]realmruntime.Transferer),
	}
	go r.loop()

	engine.Logger().Debug("realm started",
		zap.String("realm", name), zap.String("id", id))
	return r
}

// ID returns the realm's process-unique identity.
func (r *Realm) ID() string { return r.id }

// Name returns the realm's display name.
func (r *Realm) Name() string { return r.name }

// VM returns the realm's script engine. Loop goroutine only.
func (r *Realm) VM() *goja.Runtime { return r.vm }

// Schedule enqueues task on the realm's loop. See realmruntime.Realm.
func (r *Realm) Schedule(task realmruntime.Task, syncIfCurrent, duringTeardown bool) bool {
	switch r.state.Load() {
	case stateClosed:
		return false
	case stateClosing:
		if !duringTeardown {
			return false
		}
	}

	if syncIfCurrent && goid() == r.loopID.Load() {
		r.runTask(task)
		return true
	}

	// The queue grows instead of blocking: a settling realm must never
	// wait on another realm's backlog.
	r.queueMu.Lock()
	if r.state.Load() == stateClosed {
		r.queueMu.Unlock()
		return false
	}
	r.queue = append(r.queue, task)
	r.queueMu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

// Do runs fn on the realm's loop and waits for it to finish. When called
// from the loop itself, fn runs inline. Returns a torn-down error if the
// realm is no longer accepting work.
func (r *Realm) Do(fn func(vm *goja.Runtime) error) error {
	errc := make(chan error, 1)
	ok := r.Schedule(realmruntime.TaskFunc(func(cur realmruntime.Realm) {
		defer func() {
			if rec := recover(); rec != nil {
				errc <- errors.New(errors.PhaseRealm, errors.KindInvalidData).
					Realm(r.name).
					Detail("panic: %v", rec).
					Build()
			}
		}()
		errc <- fn(cur.VM())
	}), true, false)
	if !ok {
		return errors.TornDown(r.name)
	}
	return <-errc
}

// RunScript evaluates src on the realm's loop and returns the completion
// value. The returned value is realm-local; hand it to other realms only
// through the transfer package.
func (r *Realm) RunScript(src string) (goja.Value, error) {
	var out goja.Value
	err := r.Do(func(vm *goja.Runtime) error {
		if r.cfg.EvalTimeout > 0 {
			timer := time.AfterFunc(r.cfg.EvalTimeout, func() {
				vm.Interrupt(errors.Interrupted(r.name, "eval timeout"))
			})
			defer vm.ClearInterrupt()
			defer timer.Stop()
		}
		v, err := vm.RunString(src)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Interrupt aborts whatever script the realm is currently running.
func (r *Realm) Interrupt(reason string) {
	r.vm.Interrupt(errors.Interrupted(r.name, reason))
}

// OnTeardown registers fn to run on the loop during Close, before the VM is
// dropped.
func (r *Realm) OnTeardown(fn func()) {
	r.tearMu.Lock()
	defer r.tearMu.Unlock()
	r.teardowns = append(r.teardowns, fn)
}

// Close tears the realm down: queued tasks are drained, teardown hooks run
// on the loop, then the loop exits. Blocks until the loop is gone. Safe to
// call more than once.
func (r *Realm) Close() {
	r.closeOnce.Do(func() {
		r.state.CompareAndSwap(stateRunning, stateClosing)
		close(r.quit)
	})
	<-r.done
}

func (r *Realm) loop() {
	r.loopID.Store(goid())
	defer close(r.done)

	for {
		select {
		case <-r.wake:
			r.runQueued()
		case <-r.quit:
			r.runQueued()
			r.runTeardowns()
			// Teardown hooks may have scheduled duringTeardown work.
			// Drain until empty, then refuse further work; stateClosed is
			// stored under the queue lock so no task can slip in between
			// the final drain and the refusal.
			for {
				r.queueMu.Lock()
				tasks := r.queue
				r.queue = nil
				if len(tasks) == 0 {
					r.state.Store(stateClosed)
					r.queueMu.Unlock()
					break
				}
				r.queueMu.Unlock()
				for _, t := range tasks {
					r.runTask(t)
				}
			}
			r.clearBindings()
			engine.Logger().Debug("realm closed", zap.String("realm", r.name))
			return
		}
	}
}

func (r *Realm) runQueued() {
	for {
		r.queueMu.Lock()
		tasks := r.queue
		r.queue = nil
		r.queueMu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, t := range tasks {
			r.runTask(t)
		}
	}
}

func (r *Realm) runTask(t realmruntime.Task) {
	defer func() {
		if rec := recover(); rec != nil {
			engine.Logger().Error("task panic",
				zap.String("realm", r.name), zap.Any("panic", rec))
		}
	}()
	t.Run(r)
}

func (r *Realm) runTeardowns() {
	r.tearMu.Lock()
	fns := r.teardowns
	r.teardowns = nil
	r.tearMu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					engine.Logger().Error("teardown panic",
						zap.String("realm", r.name), zap.Any("panic", rec))
				}
			}()
			fn()
		}()
	}
}

// goid parses the current goroutine id out of the stack header. It exists
// only so Schedule can honor syncIfCurrent without a goroutine-local
// facility.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id uint64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
