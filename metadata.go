package godeco

import (
	"github.com/a-peyrard/godeco/set"
)

type (
	// Metadata is the per-class associative store threaded through every
	// decorator invocation of a class definition.
	//
	// A container holds its own entries and an optional reference to the
	// container of the superclass. Lookups delegate to the parent chain,
	// writes always land in the container's own entries, so a subclass
	// shadows an inherited value without ever mutating its ancestors.
	//
	// Containers are ordinary mutable objects: decorators mutate them during
	// definition, and external code may keep writing after publication (e.g.
	// to maintain private side-tables keyed by container identity). No
	// locking discipline is enforced, access is assumed cooperative.
	Metadata struct {
		parent  *Metadata
		entries map[any]any
		order   []any
	}
)

// NewMetadata allocates a fresh container. If parent is non-nil, lookups
// missing locally delegate to it. Parent entries are never copied.
func NewMetadata(parent *Metadata) *Metadata {
	return &Metadata{
		parent:  parent,
		entries: make(map[any]any),
	}
}

func (m *Metadata) Parent() *Metadata {
	return m.parent
}

// Get returns the value for the given key, checking own entries first and
// then delegating along the parent chain. The boolean distinguishes an
// absent key from a key explicitly set to nil.
func (m *Metadata) Get(key any) (value any, found bool) {
	for current := m; current != nil; current = current.parent {
		if value, found = current.entries[key]; found {
			return value, true
		}
	}
	return nil, false
}

// GetOwn is like Get but never delegates to the parent chain.
func (m *Metadata) GetOwn(key any) (value any, found bool) {
	value, found = m.entries[key]
	return value, found
}

// Set writes into the container's own entries. It never touches ancestors:
// a write from a subclass container shadows the inherited value for this
// container and its descendants, the parent keeps its own.
func (m *Metadata) Set(key any, value any) {
	if _, exists := m.entries[key]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
}

func (m *Metadata) Has(key any) bool {
	_, found := m.Get(key)
	return found
}

func (m *Metadata) HasOwn(key any) bool {
	_, found := m.entries[key]
	return found
}

// KeysOwn enumerates only locally-set keys, in insertion order.
func (m *Metadata) KeysOwn() []any {
	keys := make([]any, len(m.order))
	copy(keys, m.order)
	return keys
}

// Keys enumerates every key visible from this container, walking the parent
// chain. A key shadowed by a descendant appears once, at its closest
// occurrence.
func (m *Metadata) Keys() []any {
	var (
		seen = set.New[any]()
		keys = make([]any, 0)
	)
	for current := m; current != nil; current = current.parent {
		for _, key := range current.order {
			if seen.Contains(key) {
				continue
			}
			seen.Add(key)
			keys = append(keys, key)
		}
	}
	return keys
}
