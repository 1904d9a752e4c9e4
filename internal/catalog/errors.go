package catalog

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinels for errors.Is. Each typed error below matches exactly one of them.
var (
	ErrDiscovery           = errors.New("discovery warning")
	ErrUnknownComponent    = errors.New("unknown component")
	ErrArity               = errors.New("wrong number of extra parameters")
	ErrUnsupportedSettings = errors.New("component does not support settings")
	ErrConfiguration       = errors.New("invalid component configuration")
	ErrTypeMismatch        = errors.New("component type mismatch")
	ErrInstantiation       = errors.New("component instantiation failed")
	ErrParameterType       = errors.New("wrong extra parameter type")
)

// DiscoveryError describes a declaration that was skipped or an alias that
// could not be mapped during a scan. It is logged, and returned only when the
// catalog runs in strict mode.
type DiscoveryError struct {
	Module string
	Name   string
	Reason string
}

func (e *DiscoveryError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("component '%s': %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("module '%s', component '%s': %s", e.Module, e.Name, e.Reason)
}

func (e *DiscoveryError) Is(target error) bool { return target == ErrDiscovery }

// UnknownComponentError is returned when no descriptor exists for a (name, signature) key.
type UnknownComponentError struct {
	Name      string
	Signature Signature
}

func (e *UnknownComponentError) Error() string {
	if e.Signature == "" {
		return fmt.Sprintf("unknown component '%s'", e.Name)
	}
	return fmt.Sprintf("unknown component '%s' for signature %s", e.Name, e.Signature)
}

func (e *UnknownComponentError) Is(target error) bool { return target == ErrUnknownComponent }

// ArityError is returned when the number of extra parameters does not match
// the component's declaration.
type ArityError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong number of extra parameters for component '%s', need '%d', given '%d'", e.Name, e.Expected, e.Actual)
}

func (e *ArityError) Is(target error) bool { return target == ErrArity }

// UnsupportedSettingsError is returned when settings text is supplied to a
// component without an argument type.
type UnsupportedSettingsError struct {
	Name string
}

func (e *UnsupportedSettingsError) Error() string {
	return fmt.Sprintf("component '%s' doesn't support settings", e.Name)
}

func (e *UnsupportedSettingsError) Is(target error) bool { return target == ErrUnsupportedSettings }

// ConfigurationError is returned when the argument object cannot be built or
// the settings text is rejected. Usage carries the parser's usage text when
// available.
type ConfigurationError struct {
	Name  string
	Usage string
	Cause error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration for component '%s'", e.Name)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Usage != "" {
		msg = fmt.Sprintf("%s\nUsage For '%s':\n%s", msg, e.Name, e.Usage)
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// TypeMismatchError is returned when a component's declared type does not
// satisfy the type the caller asked for.
type TypeMismatchError struct {
	Name      string
	Requested reflect.Type
	Declared  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("component '%s' of type %v does not implement %v", e.Name, e.Declared, e.Requested)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// InstantiationError wraps a failure raised by a component's creation function.
type InstantiationError struct {
	Name  string
	Cause error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("failed to create component '%s': %v", e.Name, e.Cause)
}

func (e *InstantiationError) Unwrap() error { return e.Cause }

func (e *InstantiationError) Is(target error) bool { return target == ErrInstantiation }

// ParameterTypeError is returned when an extra parameter cannot be assigned
// to the declared parameter type.
type ParameterTypeError struct {
	Name     string
	Index    int
	Expected reflect.Type
	Actual   reflect.Type
}

func (e *ParameterTypeError) Error() string {
	actual := "nil"
	if e.Actual != nil {
		actual = e.Actual.String()
	}
	return fmt.Sprintf("component '%s': extra parameter %d must be %v, got %s", e.Name, e.Index, e.Expected, actual)
}

func (e *ParameterTypeError) Is(target error) bool { return target == ErrParameterType }
