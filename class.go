package godeco

import "fmt"

type (
	// Callable is the shape of every behavioral member (methods, getters,
	// setters), instance or static. Static members receive a nil receiver.
	Callable func(self *Instance, args ...any) any

	// FieldInit produces the initial value of a field or auto-accessor
	// backing slot, evaluated once per instance (or once per class for
	// static fields, with a nil receiver).
	FieldInit func(self *Instance) any

	// Class is a fully-defined class: the output of Definer.Define. Member
	// lookup walks the superclass chain, so subclasses inherit and shadow
	// the way their metadata containers do.
	Class struct {
		name  string
		super *Class

		methods map[string]Callable
		getters map[string]Callable
		setters map[string]Callable
		statics map[string]Callable

		fields       []fieldSlot
		staticFields map[string]any

		inits []Initializer

		meta *Metadata
	}

	// Instance is an object built from a class: a field bag plus method
	// dispatch through the class chain.
	Instance struct {
		class  *Class
		fields map[string]any
	}

	fieldSlot struct {
		name string
		init FieldInit
	}
)

func newClass(name string, super *Class) *Class {
	return &Class{
		name:  name,
		super: super,

		methods: make(map[string]Callable),
		getters: make(map[string]Callable),
		setters: make(map[string]Callable),
		statics: make(map[string]Callable),

		staticFields: make(map[string]any),
	}
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) Super() *Class {
	return c.super
}

// Metadata resolves the well-known metadata property of the class: its
// published container. It is nil until the definition pipeline publishes,
// which happens before Define returns the class to anyone.
func (c *Class) Metadata() *Metadata {
	return c.meta
}

// Method looks a method up on the class, delegating to the superclass chain.
func (c *Class) Method(name string) (m Callable, found bool) {
	for current := c; current != nil; current = current.super {
		if m, found = current.methods[name]; found {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) getter(name string) (m Callable, found bool) {
	for current := c; current != nil; current = current.super {
		if m, found = current.getters[name]; found {
			return m, true
		}
	}
	return nil, false
}

func (c *Class) setter(name string) (m Callable, found bool) {
	for current := c; current != nil; current = current.super {
		if m, found = current.setters[name]; found {
			return m, true
		}
	}
	return nil, false
}

// CallStatic invokes a static method, delegating to the superclass chain.
func (c *Class) CallStatic(name string, args ...any) (any, error) {
	for current := c; current != nil; current = current.super {
		if m, found := current.statics[name]; found {
			return m(nil, args...), nil
		}
	}
	return nil, fmt.Errorf("class %s has no static method %s", c.name, name)
}

// StaticField reads a static field, delegating to the superclass chain.
func (c *Class) StaticField(name string) (value any, found bool) {
	for current := c; current != nil; current = current.super {
		if value, found = current.staticFields[name]; found {
			return value, true
		}
	}
	return nil, false
}

func (c *Class) SetStaticField(name string, value any) {
	c.staticFields[name] = value
}

/// New constructs an instance: field initializers run base-first along the
// class chain, then decorator-queued initializers in the same order, then
// the "init" method with the given args, if the class has one.
func (c *Class) New(args ...any) *Instance {
	instance := &Instance{
		class:  c,
		fields: make(map[string]any),
	}

	chain := c.lineage()
	for _, cls := range chain {
		for _, slot := range cls.fields {
			instance.fields[slot.name] = slot.init(instance)
		}
	}
	for _, cls := range chain {
		for _, init := range cls.inits {
			init(instance)
		}
	}

	if ctor, found := c.Method("init"); found {
		ctor(instance, args...)
	}

	return instance
}

// lineage returns the class chain base-first.
func (c *Class) lineage() []*Class {
	var chain []*Class
	for current := c; current != nil; current = current.super {
		chain = append([]*Class{current}, chain...)
	}
	return chain
}

func (c *Class) String() string {
	if c.super != nil {
		return fmt.Sprintf("Class(%s extends %s)", c.name, c.super.name)
	}
	return fmt.Sprintf("Class(%s)", c.name)
}

func (i *Instance) Class() *Class {
	return i.class
}

// Get reads a named member: a getter if the class chain declares one,
// otherwise the raw field value.
func (i *Instance) Get(name string) (value any, found bool) {
	if getter, ok := i.class.getter(name); ok {
		return getter(i), true
	}
	value, found = i.fields[name]
	return value, found
}

// Set writes a named member through a setter if the class chain declares
// one, otherwise straight into the field bag.
func (i *Instance) Set(name string, value any) {
	if setter, ok := i.class.setter(name); ok {
		setter(i, value)
		return
	}
	i.fields[name] = value
}

// Field reads the raw field value, bypassing getters.
func (i *Instance) Field(name string) (value any, found bool) {
	value, found = i.fields[name]
	return value, found
}

// SetField writes the raw field value, bypassing setters.
func (i *Instance) SetField(name string, value any) {
	i.fields[name] = value
}

// Call invokes a method on the instance, dispatching through the class
// chain.
func (i *Instance) Call(name string, args ...any) (any, error) {
	m, found := i.class.Method(name)
	if !found {
		return nil, fmt.Errorf("class %s has no method %s", i.class.name, name)
	}
	return m(i, args...), nil
}
