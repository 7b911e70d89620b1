// Package realm provides the concrete execution substrate: isolated goja
// runtimes, each owned by a single loop goroutine.
//
// A Realm's loop drains a task queue. All script execution, value
// materialization and promise delivery for a realm happens on its loop;
// nothing else may touch the realm's VM. Use Do for synchronous round-trips
// and Schedule for fire-and-forget deferred work.
//
// Teardown runs registered hooks on the loop before the VM is dropped, which
// is how unsettled source-side promise bridges get abandoned rather than
// leaving destination realms waiting forever.
//
// Pool maintains a fixed set of warm realms for workloads that churn
// through short-lived contexts.
package realm
