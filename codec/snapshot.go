package codec

import (
	"github.com/bytedance/sonic"
	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/errors"
)

// Snapshotted is a byte-level serialized snapshot of a value. Unlike a deep
// copy it is encoded once; each destination realm pays only a decode.
type Snapshotted struct {
	data []byte
}

// Snapshot serializes v's exported form. Functions, symbols and circular
// structures do not serialize. Undefined is normalized to null, matching
// JSON semantics.
func Snapshot(v goja.Value) (*Snapshotted, error) {
	var exported any
	if v != nil && !goja.IsUndefined(v) {
		exported = v.Export()
	}
	data, err := sonic.Marshal(exported)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseCopy, errors.KindUnsupported, err, "value does not serialize")
	}
	return &Snapshotted{data: data}, nil
}

// TransferIn implements realmruntime.Transferable.
func (s *Snapshotted) TransferIn(r realmruntime.Realm) (goja.Value, error) {
	var out any
	if err := sonic.Unmarshal(s.data, &out); err != nil {
		return nil, errors.Wrap(errors.PhaseDeliver, errors.KindInvalidData, err, "snapshot does not deserialize")
	}
	return r.VM().ToValue(out), nil
}

// Size returns the snapshot's byte length.
func (s *Snapshotted) Size() int { return len(s.data) }
