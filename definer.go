package godeco

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/a-peyrard/godeco/fn"
	"github.com/a-peyrard/godeco/option"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type (
	DefinerOptions struct {
		logger   *zerolog.Logger
		registry *Registry
	}

	// Definer runs the class-definition pipeline: it creates the metadata
	// container, links it under the superclass's container, threads it
	// through every decoration context, and publishes it once the class's
	// own decorators have run.
	Definer struct {
		registry *Registry
		logger   zerolog.Logger
	}

	// DefineTask defines one class hierarchy, base classes before derived
	// ones. Independent tasks may run concurrently, see DefineAll.
	DefineTask func(ctx context.Context, definer *Definer) error
)

func WithLogger(logger *zerolog.Logger) option.Option[DefinerOptions] {
	return func(opts *DefinerOptions) {
		opts.logger = logger
	}
}

func WithRegistry(registry *Registry) option.Option[DefinerOptions] {
	return func(opts *DefinerOptions) {
		opts.registry = registry
	}
}

func NewDefiner(opts ...option.Option[DefinerOptions]) *Definer {
	options := option.Build(&DefinerOptions{}, opts...)

	logger := zerolog.Nop()
	if options.logger != nil {
		logger = *options.logger
	}
	registry := DefaultRegistry
	if options.registry != nil {
		registry = options.registry
	}

	return &Definer{
		registry: registry,
		logger:   logger,
	}
}

// Define runs the full definition pipeline for one class.
//
// The metadata container is created before any decorator runs and is the
// same instance for every decoration site of this definition. Member
// decorations run first (methods, then accessors, then fields, declaration
// order within each phase), then class-level decorators, then the container
// is published. Any decorator error aborts the definition: no class, no
// publication, no partially observable metadata.
func (d *Definer) Define(name string, opts ...option.Option[ClassOptions]) (*Class, error) {
	options := option.Build(&ClassOptions{}, opts...)

	var parentMeta *Metadata
	if options.super != nil {
		// the superclass finished defining before we started, so its
		// container is already published and its own entries are final
		parentMeta, _ = d.registry.Lookup(options.super)
	}
	meta := NewMetadata(parentMeta)

	cls := newClass(name, options.super)

	d.logger.Debug().
		Str("class", name).
		Int("members", len(options.members)).
		Msg("defining class")

	for _, def := range decorationOrder(options.members) {
		if err := d.decorateMember(&cls, def, meta); err != nil {
			return nil, fmt.Errorf("failed to define class %s:\n\t%w", name, err)
		}
	}

	cls, err := d.decorateClass(cls, options.decorators, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to define class %s:\n\t%w", name, err)
	}

	cls.meta = meta
	d.registry.Publish(cls, meta)

	d.logger.Debug().Str("class", name).Msg("metadata published")

	return cls, nil
}

// MustDefine is like Define but panics on error.
func (d *Definer) MustDefine(name string, opts ...option.Option[ClassOptions]) *Class {
	cls, err := d.Define(name, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to define class %s:\n\t%v", name, err))
	}
	return cls
}

// DefineAll runs independent definition tasks concurrently and waits for all
// of them. Ordering within a hierarchy stays the task's responsibility (a
// task defines its base classes before its derived ones); across tasks there
// is no ordering, which is safe as long as hierarchies do not span tasks.
func (d *Definer) DefineAll(parentCtx context.Context, tasks ...DefineTask) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, task := range tasks {
		innerTask := task
		group.Go(func() error {
			return innerTask(ctx, d)
		})
	}

	return group.Wait()
}

// decorateMember receives the class through a pointer so that static access
// descriptors resolve at call time: a class decorator may still replace the
// class after member decoration ran.
func (d *Definer) decorateMember(clsRef **Class, def *memberDef, meta *Metadata) error {
	cls := *clsRef

	var value reflect.Value
	switch def.kind {
	case KindMethod, KindGetter, KindSetter:
		value = reflect.ValueOf(def.callable)
	case KindField, KindAccessor:
		value = reflect.ValueOf(def.init)
	}

	for _, decorator := range def.options.decorators {
		d.logger.Trace().
			Str("class", cls.name).
			Stringer("kind", def.kind).
			Str("member", def.name).
			Msg("applying decorator")

		decorationCtx := &Context{
			Kind:    def.kind,
			Name:    def.name,
			Static:  def.options.static,
			Private: def.options.private,
			Access:  accessFor(clsRef, def),
			AddInitializer: func(init Initializer) {
				cls.inits = append(cls.inits, init)
			},
			Metadata: meta,
		}

		replacement, err := decorator(value, decorationCtx)
		if err != nil {
			return fmt.Errorf("decorator failed on %s %s:\n\t%w", def.kind, def.name, err)
		}
		if replacement.IsValid() {
			expected := replacementTypeFor(def.kind)
			if !replacement.Type().AssignableTo(expected) {
				return fmt.Errorf(
					"decorator on %s %s returned a %s, expected %s",
					def.kind, def.name, replacement.Type(), expected,
				)
			}
			value = replacement
		}
	}

	d.install(cls, def, value)

	return nil
}

func (d *Definer) decorateClass(cls *Class, decorators []Decorator, meta *Metadata) (*Class, error) {
	current := cls
	for _, decorator := range decorators {
		d.logger.Trace().Str("class", current.name).Msg("applying class decorator")

		decorationCtx := &Context{
			Kind: KindClass,
			Name: current.name,
			AddInitializer: func(init Initializer) {
				current.inits = append(current.inits, init)
			},
			Metadata: meta,
		}

		replacement, err := decorator(reflect.ValueOf(current), decorationCtx)
		if err != nil {
			return nil, fmt.Errorf("class decorator failed on %s:\n\t%w", current.name, err)
		}
		if replacement.IsValid() {
			if !replacement.Type().AssignableTo(classType) {
				return nil, fmt.Errorf(
					"class decorator on %s returned a %s, expected %s",
					current.name, replacement.Type(), classType,
				)
			}
			current = replacement.Interface().(*Class)
		}
	}

	return current, nil
}

func (d *Definer) install(cls *Class, def *memberDef, value reflect.Value) {
	switch def.kind {
	case KindMethod:
		// Convert, as replacements may carry the unnamed func type
		callable := value.Convert(callableType).Interface().(Callable)
		if def.options.static {
			cls.statics[def.name] = callable
		} else {
			cls.methods[def.name] = callable
		}
	case KindGetter:
		cls.getters[def.name] = value.Convert(callableType).Interface().(Callable)
	case KindSetter:
		cls.setters[def.name] = value.Convert(callableType).Interface().(Callable)
	case KindField, KindAccessor:
		init := value.Convert(fieldInitType).Interface().(FieldInit)
		if def.options.static {
			// static slots are initialized at definition time, on the class
			cls.staticFields[def.name] = init(nil)
		} else {
			cls.fields = append(cls.fields, fieldSlot{name: def.name, init: init})
		}
	}
}

func accessFor(clsRef **Class, def *memberDef) Access {
	if def.kind != KindField && def.kind != KindAccessor {
		return Access{}
	}

	name := def.name
	if def.options.static {
		return Access{
			Get: func(*Instance) any {
				value, _ := (*clsRef).StaticField(name)
				return value
			},
			Set: func(_ *Instance, value any) {
				(*clsRef).SetStaticField(name, value)
			},
		}
	}
	return Access{
		Get: func(receiver *Instance) any {
			value, _ := receiver.Field(name)
			return value
		},
		Set: func(receiver *Instance, value any) {
			receiver.SetField(name, value)
		},
	}
}

// decorationOrder sorts members into decoration phases (methods, then
// accessors, then fields), keeping declaration order within a phase.
func decorationOrder(members []*memberDef) []*memberDef {
	ordered := make([]*memberDef, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		return compareByPhase(ordered[i], ordered[j]) == fn.Less
	})
	return ordered
}

func compareByPhase(m1, m2 *memberDef) fn.ComparisonResult {
	p1, p2 := decorationPhase(m1.kind), decorationPhase(m2.kind)
	if p1 < p2 {
		return fn.Less
	}
	if p1 > p2 {
		return fn.Greater
	}
	return fn.Equal
}

func decorationPhase(kind Kind) int {
	switch kind {
	case KindMethod:
		return 0
	case KindGetter, KindSetter, KindAccessor:
		return 1
	default:
		return 2
	}
}

func replacementTypeFor(kind Kind) reflect.Type {
	switch kind {
	case KindField, KindAccessor:
		return fieldInitType
	default:
		return callableType
	}
}
