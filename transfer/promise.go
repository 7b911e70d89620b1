package transfer

import (
	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
	"github.com/realmkit/realm-runtime/bridge"
	"github.com/realmkit/realm-runtime/engine"
)

// Promised is the destination side of a bridged promise. Each TransferIn
// yields a local promise tracking the shared settlement state.
type Promised struct {
	state *bridge.State
}

// NewPromiseTransferable bridges v into a promise representation. A
// promise-shaped v settles the bridge when it settles; anything else settles
// it immediately. Either way the settled value is classified with inner,
// and a classification failure becomes a rejection rather than an error
// here. Must run on src's loop.
func NewPromiseTransferable(src realmruntime.Realm, v goja.Value, inner Options) (*Promised, error) {
	st := bridge.NewState()
	h := bridge.NewHolder(src, st, func(settled goja.Value) (realmruntime.Transferable, error) {
		return TransferOut(src, settled, inner)
	})

	if _, ok := engine.AsPromise(v); ok {
		if err := h.Accept(v); err != nil {
			return nil, err
		}
	} else {
		h.Resolved(v)
	}
	return &Promised{state: st}, nil
}

func (p *Promised) TransferIn(r realmruntime.Realm) (goja.Value, error) {
	return p.state.TransferIn(r)
}

// Settled reports whether the originating side has settled yet.
func (p *Promised) Settled() bool { return p.state.Settled() }
