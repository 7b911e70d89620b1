// Package bridge implements the cross-realm promise bridge: the state
// machine that lets a pending asynchronous result produced in one realm be
// observed, exactly once, by any number of other realms running
// concurrently.
//
// A bridge is a pair of cooperating halves sharing one State:
//
//   - the Holder lives in the source realm, observes the originating
//     promise and performs the single terminal write;
//   - each destination realm materializes the State into a local promise,
//     either settled immediately or parked as a waiter until delivery.
//
// State is the only object in the library shared across realm goroutines.
// Every access happens under its mutex; there is no lock-free or
// double-checked path. Settlement is idempotent: competing continuations,
// a late settlement racing an abandonment, or a double Release all collapse
// into exactly one recorded outcome. Waiters are delivered in FIFO
// registration order, each via a task scheduled onto its own realm's loop,
// best effort: a destination realm torn down between settlement and
// delivery silently drops its task.
//
// A marshaling failure while classifying the settling value never escapes
// into the source realm's control flow; it is captured as a copyable error
// and the bridge settles as rejected with it.
package bridge
