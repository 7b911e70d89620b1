// Package transfer classifies realm-owned values into realm-independent
// representations that can be materialized in another realm.
//
// The classifier picks one of four representations:
//
//   - deep copy (codec.Copy): structural clone, re-cloned per destination
//   - snapshot (codec.Snapshot): serialized bytes, cheap to rematerialize
//   - back-reference (reference.Wrap): handle owned by the origin realm
//   - promise bridge: a promise whose settlement follows the original
//
// Selection is driven by Options parsed from the flags `copy`,
// `externalCopy`, `reference` and `promise`. The first three are mutually
// exclusive; `promise` composes with any of them and wins the dispatch, the
// remaining flags then classify the settled value.
package transfer
