package godeco

import (
	"fmt"
	"sync"

	"github.com/a-peyrard/godeco/concurrent"
)

type (
	// Registry is the process-wide association from fully-defined classes to
	// their metadata containers. A class enters the registry exactly once,
	// right after its own decorators have run.
	Registry struct {
		inner     sync.Map
		listeners *concurrent.Slice[Listener]
	}

	// Listener is notified synchronously every time a class publishes its
	// metadata container.
	Listener func(cls *Class, meta *Metadata)
)

// DefaultRegistry is the registry definers use unless told otherwise.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		listeners: concurrent.NewSlice[Listener](),
	}
}

// Publish records the container for the given class and notifies listeners.
//
// Publishing twice for the same class is a pipeline bug, not a user error,
// so it panics rather than returning an error.
func (r *Registry) Publish(cls *Class, meta *Metadata) {
	if _, loaded := r.inner.LoadOrStore(cls, meta); loaded {
		panic(fmt.Sprintf("registry: metadata already published for class %s", cls.Name()))
	}
	for _, listener := range r.listeners.Get() {
		listener(cls, meta)
	}
}

// Lookup returns the published container for the given class. Absence is a
// valid outcome (the class was never defined through a pipeline using this
// registry), distinct from "present but empty".
func (r *Registry) Lookup(cls *Class) (meta *Metadata, found bool) {
	raw, found := r.inner.Load(cls)
	if found {
		return raw.(*Metadata), true
	}

	return nil, false
}

// Subscribe registers a listener called on every subsequent publication.
// Already-published classes are not replayed; use Range for those.
func (r *Registry) Subscribe(listener Listener) {
	r.listeners.Append(listener)
}

// Range iterates over all published classes and their containers.
func (r *Registry) Range(fn func(cls *Class, meta *Metadata) bool) {
	r.inner.Range(func(rawCls, rawMeta any) bool {
		return fn(rawCls.(*Class), rawMeta.(*Metadata))
	})
}
