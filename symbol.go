package godeco

import "fmt"

// Symbol is an opaque metadata key.
//
// Two symbols are distinct keys unless they are the very same allocation,
// whatever their descriptions are. This allows libraries to reserve keys in a
// shared container without ever colliding with each other.
type Symbol struct {
	description string
}

func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (s *Symbol) Description() string {
	return s.description
}

func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.description)
}
