// Package codec implements the structural transfer representations: deep
// copies and serialized snapshots.
//
// A deep copy (Copied) is a realm-independent tree of Go primitives, slices
// and maps. It re-clones itself into every destination realm, so realms
// never share backing storage. A snapshot (Snapshotted) is a byte-level
// serialization produced with sonic; it trades per-realm re-cloning for a
// single encode plus per-realm decode, and it rejects value shapes that do
// not serialize (functions, symbols, cycles).
//
// CopyIfPrimitiveOrError never fails: values that do not copy structurally
// are normalized to an ErrorValue marker, which is what lets promise
// settlement convert marshaling faults into rejections instead of letting
// them escape into the source realm.
package codec
