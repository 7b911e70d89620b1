package realm

import (
	"github.com/dop251/goja"

	realmruntime "github.com/realmkit/realm-runtime"
)

// Bind associates a realm-local object with the Transferer that moves it
// across the boundary. The association lives until Unbind or realm teardown.
func (r *Realm) Bind(obj *goja.Object, tr realmruntime.Transferer) {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()
	if r.bindings == nil {
		return
	}
	r.bindings[obj] = tr
}

// Binding looks up the Transferer previously bound to obj.
func (r *Realm) Binding(obj *goja.Object) (realmruntime.Transferer, bool) {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()
	tr, ok := r.bindings[obj]
	return tr, ok
}

// Unbind removes obj's association, if any.
func (r *Realm) Unbind(obj *goja.Object) {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()
	delete(r.bindings, obj)
}

// BindingCount returns the number of live bindings.
func (r *Realm) BindingCount() int {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()
	return len(r.bindings)
}

func (r *Realm) clearBindings() {
	r.bindMu.Lock()
	defer r.bindMu.Unlock()
	r.bindings = nil
}
