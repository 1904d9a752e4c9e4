package catalog

import (
	"context"
	"fmt"
	"reflect"
)

// CreateArguments returns a new default-valued argument object, or nil when
// the component takes no arguments.
func (d *Descriptor) CreateArguments() (args any, err error) {
	if d.argType == nil {
		return nil, nil
	}

	if d.newArgs != nil {
		defer func() {
			if r := recover(); r != nil {
				args, err = nil, &ConfigurationError{Name: d.Name(), Cause: fmt.Errorf("argument constructor panicked: %v", r)}
			}
		}()
		args = d.newArgs()
		if args == nil || !reflect.TypeOf(args).AssignableTo(d.argType) {
			return nil, &ConfigurationError{
				Name:  d.Name(),
				Cause: fmt.Errorf("argument constructor returned %T, want %v", args, d.argType),
			}
		}
		return args, nil
	}

	if d.argType.Kind() != reflect.Pointer || d.argType.Elem().Kind() != reflect.Struct {
		return nil, &ConfigurationError{
			Name:  d.Name(),
			Cause: fmt.Errorf("argument type %v has no suitable default constructor", d.argType),
		}
	}
	args = reflect.New(d.argType.Elem()).Interface()
	if def, ok := args.(Defaulter); ok {
		def.SetDefaults()
	}
	return args, nil
}

// Invoke creates an instance. args must be non-nil exactly when the component
// declares an argument type, and extra must hold one value per declared extra
// parameter. The parameter list passed to the creation function is
// [ctx] + [args] + extra, with ctx present only when RequiresContext is true.
//
// A nil context for a component that requires one, or an argument object
// that does not match the declaration, is a programming error and panics.
func (d *Descriptor) Invoke(ctx context.Context, args any, extra []any) (any, error) {
	if len(extra) != len(d.extraParams) {
		return nil, &ArityError{Name: d.Name(), Expected: len(d.extraParams), Actual: len(extra)}
	}
	if (d.argType != nil) != (args != nil) {
		panic(fmt.Sprintf("catalog: component '%s' declares argument type %v but was given %T", d.Name(), d.argType, args))
	}
	if d.requiresContext && ctx == nil {
		panic(fmt.Sprintf("catalog: component '%s' requires a context", d.Name()))
	}

	in := make([]reflect.Value, 0, len(extra)+2)
	if d.requiresContext {
		in = append(in, reflect.ValueOf(ctx))
	}
	if d.argType != nil {
		av := reflect.ValueOf(args)
		if !av.Type().AssignableTo(d.argType) {
			panic(fmt.Sprintf("catalog: component '%s' argument object is %v, want %v", d.Name(), av.Type(), d.argType))
		}
		in = append(in, av)
	}
	for i, p := range extra {
		want := d.extraParams[i]
		if p == nil {
			if !nillable(want) {
				return nil, &ParameterTypeError{Name: d.Name(), Index: i, Expected: want}
			}
			in = append(in, reflect.Zero(want))
			continue
		}
		v := reflect.ValueOf(p)
		if !v.Type().AssignableTo(want) {
			return nil, &ParameterTypeError{Name: d.Name(), Index: i, Expected: want, Actual: v.Type()}
		}
		in = append(in, v)
	}

	switch d.strategy {
	case StaticAccessor:
		if len(in) != 0 {
			panic(fmt.Sprintf("catalog: static accessor for '%s' given %d parameters", d.Name(), len(in)))
		}
		return d.call(nil)
	case Constructor, FactoryMethod:
		return d.call(in)
	default:
		panic(fmt.Sprintf("catalog: can't instantiate component '%s': unresolved creation strategy", d.Name()))
	}
}

// CreateDefault creates an instance with default arguments.
func (d *Descriptor) CreateDefault(ctx context.Context, extra ...any) (any, error) {
	args, err := d.CreateArguments()
	if err != nil {
		return nil, err
	}
	return d.Invoke(ctx, args, extra)
}

func (d *Descriptor) call(in []reflect.Value) (inst any, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, &InstantiationError{Name: d.Name(), Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	out := d.fn.Call(in)
	if d.returnsError {
		if e, _ := out[1].Interface().(error); e != nil {
			return nil, &InstantiationError{Name: d.Name(), Cause: e}
		}
	}
	return out[0].Interface(), nil
}

// InvokeAs is the type-checked variant of Invoke. It fails with a
// *TypeMismatchError when the component's declared type is not assignable to
// T, before anything is created.
func InvokeAs[T any](d *Descriptor, ctx context.Context, args any, extra []any) (T, error) {
	var zero T
	if err := checkAssignable[T](d); err != nil {
		return zero, err
	}
	inst, err := d.Invoke(ctx, args, extra)
	if err != nil {
		return zero, err
	}
	return assertAs[T](d, inst)
}

func checkAssignable[T any](d *Descriptor) error {
	requested := TypeOf[T]()
	if !d.component.AssignableTo(requested) {
		return &TypeMismatchError{Name: d.Name(), Requested: requested, Declared: d.component}
	}
	return nil
}

func assertAs[T any](d *Descriptor, inst any) (T, error) {
	var zero T
	if inst == nil {
		return zero, nil
	}
	v, ok := inst.(T)
	if !ok {
		return zero, &TypeMismatchError{Name: d.Name(), Requested: TypeOf[T](), Declared: reflect.TypeOf(inst)}
	}
	return v, nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
