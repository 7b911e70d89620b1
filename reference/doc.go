// Package reference implements back-references: handles to a value that
// stays owned by its origin realm.
//
// A Reference never copies the underlying value. Materialized in the origin
// realm it yields the original object (identity contract). Materialized
// anywhere else it yields a lightweight proxy exposing the value's typeof,
// a deref() that refuses to run outside the origin, and an asynchronous
// get(name) that reads a property on the origin realm's loop and hands the
// result back through the promise bridge.
//
// Proxies are registered in the destination realm's bindings table, so
// transferring a proxy onward resolves to the same Reference and a
// round-trip back to the origin realm restores the original value.
package reference
