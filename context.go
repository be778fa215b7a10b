package godeco

import "reflect"

type (
	// Kind identifies the decoration site a decorator is applied to.
	Kind int

	// Access exposes the decorated value on a receiver without going through
	// the class surface. For instance members the receiver is the instance;
	// for static members the receiver is ignored and the class storage is
	// addressed directly.
	Access struct {
		Get func(receiver *Instance) any
		Set func(receiver *Instance, value any)
	}

	// Initializer is an extra initialization step a decorator can queue via
	// Context.AddInitializer. Queued initializers run when an instance of
	// the class is constructed, after field initializers.
	Initializer func(receiver *Instance)

	// Context is the per-decoration-site object passed to each decorator
	// invocation. It is ephemeral: constructed right before the decorator
	// call and discarded after. The Metadata reference it carries is not:
	// every context produced while defining one class points at the same
	// container instance, which outlives them all.
	Context struct {
		Kind    Kind
		Name    string
		Static  bool
		Private bool

		// Access is only populated for fields and auto-accessors; methods,
		// getters and setters receive their current value as the decorated
		// value itself.
		Access Access

		AddInitializer func(init Initializer)

		// Metadata is the container of the class currently being defined,
		// shared across all of its decoration sites. Decorators mutate it
		// directly; there is no copy-on-write.
		Metadata *Metadata
	}

	// Decorator observes a decoratable value and may replace it. Returning
	// an invalid reflect.Value keeps the current value. Returning an error
	// aborts the whole class definition.
	Decorator func(value reflect.Value, ctx *Context) (reflect.Value, error)
)

const (
	KindClass Kind = iota
	KindMethod
	KindGetter
	KindSetter
	KindField
	KindAccessor
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindField:
		return "field"
	case KindAccessor:
		return "accessor"
	}
	return "unknown"
}
