package transfer

import (
	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/codec"
	"github.com/realmkit/realm-runtime/errors"
	"github.com/realmkit/realm-runtime/reference"
)

// TransferOut classifies v per o. A value no representation applies to is an
// error. Must run on src's loop.
func TransferOut(src realmruntime.Realm, v goja.Value, o Options) (realmruntime.Transferable, error) {
	tr, err := OptionalTransferOut(src, v, o)
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, errors.NonTransferable()
	}
	return tr, nil
}

// OptionalTransferOut is TransferOut with (nil, nil) instead of an error
// when no representation applies.
//
// Dispatch order: the promise flag wins outright, with the remaining flags
// classifying the settled value. An unset kind tries the value's own
// transfer capability, then the primitive fast path, then the fallback kind.
// An explicit kind goes straight to its codec.
func OptionalTransferOut(src realmruntime.Realm, v goja.Value, o Options) (realmruntime.Transferable, error) {
	if v == nil {
		v = goja.Undefined()
	}

	if o.Promise {
		inner := o
		inner.Promise = false
		p, err := NewPromiseTransferable(src, v, inner)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	switch o.Kind {
	case KindUnset:
		if obj, ok := v.(*goja.Object); ok {
			if tr, ok := src.Binding(obj); ok {
				return tr.SelfTransferOut()
			}
		}
		if t, ok := codec.CopyIfPrimitive(v); ok {
			return t, nil
		}
		if o.Fallback == KindUnset {
			return nil, nil
		}
		next := o
		next.Kind = o.Fallback
		next.Fallback = KindUnset
		return OptionalTransferOut(src, v, next)

	case KindCopy:
		c, err := codec.Copy(src.VM(), v)
		if err != nil {
			return nil, err
		}
		return c, nil

	case KindSnapshot:
		s, err := codec.Snapshot(v)
		if err != nil {
			return nil, err
		}
		return s, nil

	case KindReference:
		return reference.Wrap(src, v), nil
	}

	return nil, nil
}
