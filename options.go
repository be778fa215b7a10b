package godeco

import "github.com/a-peyrard/godeco/option"

type (
	// ClassOptions accumulates the declarative description of a class:
	// superclass, members in declaration order, class-level decorators.
	ClassOptions struct {
		super      *Class
		members    []*memberDef
		decorators []Decorator
	}

	// MemberOptions carries the per-member flags and decorators.
	MemberOptions struct {
		static     bool
		private    bool
		decorators []Decorator
	}

	memberDef struct {
		kind Kind
		name string

		callable Callable
		init     FieldInit

		options *MemberOptions
	}
)

// Extends declares the superclass. The superclass must be fully defined
// before the subclass definition starts, which holding its *Class guarantees.
func Extends(super *Class) option.Option[ClassOptions] {
	return func(opts *ClassOptions) {
		opts.super = super
	}
}

// DecorateClass appends class-level decorators, applied after every member
// decoration completes.
func DecorateClass(decorators ...Decorator) option.Option[ClassOptions] {
	return func(opts *ClassOptions) {
		opts.decorators = append(opts.decorators, decorators...)
	}
}

func Method(name string, callable Callable, opts ...option.Option[MemberOptions]) option.Option[ClassOptions] {
	return behavioralMember(KindMethod, name, callable, opts)
}

func Getter(name string, callable Callable, opts ...option.Option[MemberOptions]) option.Option[ClassOptions] {
	return behavioralMember(KindGetter, name, callable, opts)
}

func Setter(name string, callable Callable, opts ...option.Option[MemberOptions]) option.Option[ClassOptions] {
	return behavioralMember(KindSetter, name, callable, opts)
}

func Field(name string, init FieldInit, opts ...option.Option[MemberOptions]) option.Option[ClassOptions] {
	return storageMember(KindField, name, init, opts)
}

// Accessor declares an auto-accessor: a backing field slot with generated
// get/set access exposed to decorators through Context.Access.
func Accessor(name string, init FieldInit, opts ...option.Option[MemberOptions]) option.Option[ClassOptions] {
	return storageMember(KindAccessor, name, init, opts)
}

func behavioralMember(kind Kind, name string, callable Callable, opts []option.Option[MemberOptions]) option.Option[ClassOptions] {
	return func(classOpts *ClassOptions) {
		classOpts.members = append(classOpts.members, &memberDef{
			kind:     kind,
			name:     name,
			callable: callable,
			options:  option.Build(&MemberOptions{}, opts...),
		})
	}
}

func storageMember(kind Kind, name string, init FieldInit, opts []option.Option[MemberOptions]) option.Option[ClassOptions] {
	return func(classOpts *ClassOptions) {
		classOpts.members = append(classOpts.members, &memberDef{
			kind:    kind,
			name:    name,
			init:    init,
			options: option.Build(&MemberOptions{}, opts...),
		})
	}
}

// Static marks the member static: behavioral members receive a nil receiver,
// field slots live on the class and are initialized at definition time.
func Static() option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.static = true
	}
}

// Private marks the member private. The engine only carries the flag into
// decoration contexts; it does not mangle names.
func Private() option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.private = true
	}
}

// Decorate appends decorators to the member, applied in the given order.
func Decorate(decorators ...Decorator) option.Option[MemberOptions] {
	return func(opts *MemberOptions) {
		opts.decorators = append(opts.decorators, decorators...)
	}
}

// Value builds a field initializer returning a constant.
func Value(v any) FieldInit {
	return func(*Instance) any {
		return v
	}
}
