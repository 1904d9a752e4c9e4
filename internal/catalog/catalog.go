package catalog

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
)

// ArgumentParser populates an argument object from settings text. A nil error
// means the text was accepted. usage describes the accepted settings and is
// surfaced verbatim to callers when parsing fails.
type ArgumentParser interface {
	Parse(args any, settings string) (usage string, err error)
}

// UsageWriter is implemented by parsers that can describe an argument object
// without parsing anything.
type UsageWriter interface {
	Usage(args any) string
}

// Catalog is the public surface over the registry, scanner and instantiation
// engine. A Catalog is safe for concurrent use.
type Catalog struct {
	reg    *Registry
	parser ArgumentParser
	logger *slog.Logger
	strict bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for discovery warnings and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithArgumentParser sets the parser used for settings text.
func WithArgumentParser(p ArgumentParser) Option {
	return func(c *Catalog) { c.parser = p }
}

// WithStrictRegistration makes RegisterModule return the discovery warnings
// raised while scanning the given modules. Warnings are logged and the first
// registration for a key is kept either way.
func WithStrictRegistration() Option {
	return func(c *Catalog) { c.strict = true }
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	c.reg = newRegistry(c.logger)
	return c
}

// Registry exposes the underlying descriptor registry.
func (c *Catalog) Registry() *Registry {
	return c.reg
}

// RegisterModule scans modules and indexes their components. When it returns,
// every component the modules declare is visible to lookups on any goroutine.
// It may be called from a module's Components method. A module must not
// register its own ID from there.
//
// Outside strict mode the returned error is always nil.
func (c *Catalog) RegisterModule(mods ...Module) error {
	issues := c.reg.scanner.scan(mods...)
	if !c.strict || len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i, e := range issues {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// DiscoveryErrors returns every discovery warning recorded so far.
func (c *Catalog) DiscoveryErrors() []error {
	return c.reg.scanner.allIssues()
}

// FindComponent returns the descriptor registered for (name, sig).
func (c *Catalog) FindComponent(name string, sig Signature) (*Descriptor, bool) {
	return c.reg.FindByKey(name, sig)
}

// GetAllComponents returns every descriptor in registration order.
func (c *Catalog) GetAllComponents() []*Descriptor {
	return c.reg.AllDescriptors()
}

// GetAllSignatures returns every signature seen so far.
func (c *Catalog) GetAllSignatures() []Signature {
	return c.reg.AllSignatures()
}

// GetComponentsForSignature returns the descriptors registered under sig
// whose component type is assignable to capability. An empty sig means
// SignatureDefault; a nil capability matches everything.
func (c *Catalog) GetComponentsForSignature(sig Signature, capability reflect.Type) []*Descriptor {
	if sig == "" {
		sig = SignatureDefault
	}
	var out []*Descriptor
	for _, d := range c.reg.FindBySignature(sig) {
		if capability == nil || d.component.AssignableTo(capability) {
			out = append(out, d)
		}
	}
	return out
}

// FindByAlias returns the descriptors having name as an alias.
func (c *Catalog) FindByAlias(name string) []*Descriptor {
	return c.reg.FindByAlias(name)
}

// FindBySignature returns the descriptors registered under sig.
func (c *Catalog) FindBySignature(sig Signature) []*Descriptor {
	return c.reg.FindBySignature(sig)
}

// FindByArgumentTypeAndSignature returns the descriptors registered under sig
// that take argType as their argument object.
func (c *Catalog) FindByArgumentTypeAndSignature(argType reflect.Type, sig Signature) []*Descriptor {
	return c.reg.FindByArgumentTypeAndSignature(argType, sig)
}

// SignatureDisplayName returns sig without its conventional prefix.
func (c *Catalog) SignatureDisplayName(sig Signature) string {
	return SignatureDisplayName(sig)
}

// Usage describes the settings accepted by d, or returns "" when d takes no
// arguments or the parser cannot describe them.
func (c *Catalog) Usage(d *Descriptor) string {
	w, ok := c.parser.(UsageWriter)
	if !ok || d.argType == nil {
		return ""
	}
	args, err := d.CreateArguments()
	if err != nil {
		return ""
	}
	return w.Usage(args)
}

// CreateInstance creates the component registered for (name, sig), applying
// settings to its argument object. extra holds the component's extra
// parameters in declaration order.
func (c *Catalog) CreateInstance(ctx context.Context, sig Signature, name, settings string, extra ...any) (any, error) {
	inst, found, err := c.TryCreateInstance(ctx, sig, name, settings, extra...)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &UnknownComponentError{Name: name, Signature: sig}
	}
	return inst, nil
}

// TryCreateInstance is CreateInstance without the unknown-component error:
// found is false when nothing is registered for (name, sig). Every other
// failure is returned as an error.
func (c *Catalog) TryCreateInstance(ctx context.Context, sig Signature, name, settings string, extra ...any) (inst any, found bool, err error) {
	d, ok := c.reg.FindByKey(name, sig)
	if !ok {
		c.logger.Debug("Component not found.", "name", name, "signature", string(sig))
		return nil, false, nil
	}
	inst, err = c.create(ctx, d, name, settings, extra)
	return inst, true, err
}

func (c *Catalog) create(ctx context.Context, d *Descriptor, name, settings string, extra []any) (any, error) {
	if len(extra) != d.ExtraArgCount() {
		return nil, &ArityError{Name: name, Expected: d.ExtraArgCount(), Actual: len(extra)}
	}

	if d.argType == nil {
		if settings != "" {
			return nil, &UnsupportedSettingsError{Name: name}
		}
		c.logger.Debug("Creating component.", "name", d.Name(), "strategy", d.strategy.String())
		return d.Invoke(ctx, nil, extra)
	}

	args, err := d.CreateArguments()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(settings) != "" {
		if err := c.parseArguments(d, args, settings); err != nil {
			return nil, err
		}
	}
	c.logger.Debug("Creating component.", "name", d.Name(), "strategy", d.strategy.String(), "settings", settings)
	return d.Invoke(ctx, args, extra)
}

func (c *Catalog) parseArguments(d *Descriptor, args any, settings string) error {
	if c.parser == nil {
		return &ConfigurationError{Name: d.Name(), Cause: errors.New("no argument parser configured")}
	}
	usage, err := c.parser.Parse(args, settings)
	if err != nil {
		return &ConfigurationError{Name: d.Name(), Usage: usage, Cause: err}
	}
	return nil
}

// Create is the type-checked variant of Catalog.CreateInstance.
func Create[T any](ctx context.Context, c *Catalog, sig Signature, name, settings string, extra ...any) (T, error) {
	v, found, err := TryCreate[T](ctx, c, sig, name, settings, extra...)
	if err != nil {
		return v, err
	}
	if !found {
		return v, &UnknownComponentError{Name: name, Signature: sig}
	}
	return v, nil
}

// TryCreate is the type-checked variant of Catalog.TryCreateInstance.
func TryCreate[T any](ctx context.Context, c *Catalog, sig Signature, name, settings string, extra ...any) (T, bool, error) {
	var zero T
	d, ok := c.reg.FindByKey(name, sig)
	if !ok {
		return zero, false, nil
	}
	if err := checkAssignable[T](d); err != nil {
		return zero, true, err
	}
	inst, err := c.create(ctx, d, name, settings, extra)
	if err != nil {
		return zero, true, err
	}
	v, err := assertAs[T](d, inst)
	return v, true, err
}
