package catalog

import (
	"reflect"
	"slices"
	"strings"
)

// Strategy is the mechanism used to produce a component instance.
type Strategy int

const (
	// StrategyUnresolved means no creation function matched the declaration.
	// Registered descriptors never carry it.
	StrategyUnresolved Strategy = iota
	// StaticAccessor is a zero-argument function returning a shared or fresh instance.
	StaticAccessor
	// Constructor is the loader type's constructor function.
	Constructor
	// FactoryMethod is a factory function hosted by the loader type.
	FactoryMethod
)

func (s Strategy) String() string {
	switch s {
	case StaticAccessor:
		return "static-accessor"
	case Constructor:
		return "constructor"
	case FactoryMethod:
		return "factory"
	default:
		return "unresolved"
	}
}

// Declaration is the record a component package hands to the catalog for each
// component it provides. Only Component, Signatures, LoadNames and one of the
// creation functions are required.
type Declaration struct {
	// Component is the capability type the component implements, usually an
	// interface type obtained with TypeOf.
	Component reflect.Type
	// Loader is the type hosting the creation function. Defaults to Component.
	Loader reflect.Type

	Signatures []Signature
	// LoadNames are the aliases; the first one is canonical.
	LoadNames []string

	// Args is the settings type, normally a pointer to a struct. Nil when the
	// component takes no options.
	Args reflect.Type
	// NewArgs optionally returns a default-valued Args object. Without it,
	// pointer-to-struct arguments are allocated with their zero value and
	// SetDefaults is called when the type implements Defaulter.
	NewArgs func() any
	// Params are the extra creation parameter types, excluding the argument
	// object and the context.
	Params []reflect.Type

	// Instance is a func() T accessor. Only considered when Params is empty.
	Instance any
	// New is a constructor func([ctx,] [args,] params...) T or (T, error).
	New any
	// Create is a factory func with the same shape rules as New.
	Create any

	UserName string
	Summary  string
	DocName  string
}

// Defaulter is implemented by argument objects that need non-zero defaults.
type Defaulter interface {
	SetDefaults()
}

// TypeOf returns the reflect.Type for T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Descriptor describes one instantiatable component. Descriptors are built by
// the scanner once a creation strategy is resolved and are immutable.
type Descriptor struct {
	component reflect.Type
	loader    reflect.Type

	signatures []Signature
	loadNames  []string

	argType     reflect.Type
	newArgs     func() any
	extraParams []reflect.Type

	requiresContext bool
	strategy        Strategy
	fn              reflect.Value
	returnsError    bool

	userName string
	summary  string
	docName  string
}

// Name returns the canonical (first) load name.
func (d *Descriptor) Name() string { return d.loadNames[0] }

// LoadNames returns all aliases in declaration order.
func (d *Descriptor) LoadNames() []string { return slices.Clone(d.loadNames) }

// ComponentType is the capability type the component implements.
func (d *Descriptor) ComponentType() reflect.Type { return d.component }

// LoaderType is the type hosting the creation function.
func (d *Descriptor) LoaderType() reflect.Type { return d.loader }

// Signatures returns the signatures the component satisfies.
func (d *Descriptor) Signatures() []Signature { return slices.Clone(d.signatures) }

// HasSignature reports whether the component is registered under sig.
func (d *Descriptor) HasSignature(sig Signature) bool {
	return slices.Contains(d.signatures, sig)
}

// ArgType is the settings type, or nil.
func (d *Descriptor) ArgType() reflect.Type { return d.argType }

// ExtraParamTypes returns the extra creation parameter types.
func (d *Descriptor) ExtraParamTypes() []reflect.Type { return slices.Clone(d.extraParams) }

// ExtraArgCount is the number of extra parameters callers must supply.
func (d *Descriptor) ExtraArgCount() int { return len(d.extraParams) }

// RequiresContext reports whether the creation function takes a leading context.
func (d *Descriptor) RequiresContext() bool { return d.requiresContext }

// Strategy is the resolved creation strategy.
func (d *Descriptor) Strategy() Strategy { return d.strategy }

// UserName is the display name. Empty means hidden.
func (d *Descriptor) UserName() string { return d.userName }

// Summary is a short description of the component.
func (d *Descriptor) Summary() string { return d.summary }

// DocName references the component's documentation, if any.
func (d *Descriptor) DocName() string { return d.docName }

// IsHidden reports whether the component should be left out of user listings.
func (d *Descriptor) IsHidden() bool { return strings.TrimSpace(d.userName) == "" }

// hasAlias reports whether the normalized name is one of the descriptor's aliases.
func (d *Descriptor) hasAlias(normalized string) bool {
	for _, n := range d.loadNames {
		if Normalize(n) == normalized {
			return true
		}
	}
	return false
}

func (d *Descriptor) String() string {
	return d.Name()
}
