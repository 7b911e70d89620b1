// Package realmruntime provides isolated JavaScript realms for Go and a
// transfer protocol for moving values between them.
//
// A realm is an execution context with its own heap and a single-goroutine
// run loop. Realms share no script objects; the only way a value crosses
// from one realm to another is through a Transferable, a realm-independent
// representation that can materialize into any realm's local form.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	realmruntime/        Root package with the Realm, Task and Transferable contracts
//	├── realm/           Concrete realm: run loop, task scheduling, teardown, pooling
//	├── engine/          goja VM construction, hardening and value inspection
//	├── transfer/        Transfer options, value classification and dispatch
//	├── bridge/          Cross-realm promise bridge (single-settlement state machine)
//	├── codec/           Deep-copy and serialized-snapshot codecs
//	├── reference/       Opaque back-references with destination-side proxies
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Move a value between two realms:
//
//	src := realm.New(realm.Config{Name: "src"})
//	dst := realm.New(realm.Config{Name: "dst"})
//	defer src.Close()
//	defer dst.Close()
//
//	var out realmruntime.Transferable
//	src.Do(func(vm *goja.Runtime) error {
//	    v, err := vm.RunString("({answer: 42})")
//	    if err != nil {
//	        return err
//	    }
//	    out, err = transfer.TransferOut(src, v, transfer.Options{Kind: transfer.KindCopy})
//	    return err
//	})
//	dst.Do(func(vm *goja.Runtime) error {
//	    local, err := out.TransferIn(dst)
//	    fmt.Println(local) // {answer: 42}, cloned into dst's heap
//	    return err
//	})
//
// # Transfer Kinds
//
// A value leaving a realm is represented one of four ways:
//
//   - deep copy: a structural clone re-built in every destination realm
//   - serialized snapshot: a byte-level snapshot, deserialized on arrival
//   - back-reference: an opaque pointer to the original, materializing as a proxy
//   - promise: a pending asynchronous result observed across realms
//
// # Thread Safety
//
// Each realm executes cooperatively on exactly one goroutine. Script values
// must only be touched from their realm's loop (use Realm.Do or Schedule).
// The promise bridge state is the only object in the system shared across
// realm goroutines, and every access to it is mutex-protected.
package realmruntime
