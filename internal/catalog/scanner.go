package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
)

// Module is implemented by every package that contributes components.
type Module interface {
	// ModuleID identifies the module. A module is scanned at most once per ID.
	ModuleID() string
	// Components returns one declaration per component the module provides.
	Components() []Declaration
}

// transient is implemented by generated modules that must not be indexed.
type transient interface {
	Transient() bool
}

type staticModule struct {
	id    string
	decls []Declaration
}

func (m *staticModule) ModuleID() string          { return m.id }
func (m *staticModule) Components() []Declaration { return m.decls }

// NewModule wraps a fixed list of declarations as a Module.
func NewModule(id string, decls ...Declaration) Module {
	return &staticModule{id: id, decls: decls}
}

var (
	contextType = TypeOf[context.Context]()
	errorType   = TypeOf[error]()
)

// scanner discovers descriptors from modules. Module code runs outside mu;
// validating and registering a module's declarations is a commit, and commits
// are serialized through mu. mu is never held while module code runs, so a
// RegisterModule made from inside a Components method blocks only on other
// commits and cannot deadlock.
type scanner struct {
	reg    *Registry
	logger *slog.Logger

	mu      sync.Mutex
	scanned map[string]struct{}

	issuesMu sync.Mutex
	issues   []*DiscoveryError
}

func newScanner(reg *Registry, logger *slog.Logger) *scanner {
	return &scanner{
		reg:     reg,
		logger:  logger,
		scanned: make(map[string]struct{}),
	}
}

// scan runs one pass over mods and returns the issues it raised. Every module
// is indexed by the time scan returns.
func (s *scanner) scan(mods ...Module) []*DiscoveryError {
	var issues []*DiscoveryError
	for _, m := range mods {
		if m != nil {
			issues = append(issues, s.scanModule(m)...)
		}
	}
	return issues
}

// settle waits for any commit in flight to finish.
func (s *scanner) settle() {
	s.mu.Lock()
	//nolint:staticcheck // empty critical section orders the caller after a commit
	s.mu.Unlock()
}

func (s *scanner) isScanned(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.scanned[id]
	return ok
}

func (s *scanner) scanModule(m Module) []*DiscoveryError {
	id := m.ModuleID()
	logger := s.logger.With("module", id)

	if t, ok := m.(transient); ok && t.Transient() {
		logger.Debug("Skipping transient module.")
		return nil
	}
	if id == "" {
		return []*DiscoveryError{s.report("", "", "module has an empty ID and cannot be tracked")}
	}
	if s.isScanned(id) {
		logger.Debug("Module already scanned, skipping.")
		return nil
	}

	decls, listErr := components(m)
	return s.commit(id, decls, listErr)
}

// commit registers a module's declarations under mu. Two goroutines racing on
// the same module ID may both list its components; only the first commit
// counts.
func (s *scanner) commit(id string, decls []Declaration, listErr error) []*DiscoveryError {
	logger := s.logger.With("module", id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.scanned[id]; done {
		logger.Debug("Module already scanned, skipping.")
		return nil
	}
	s.scanned[id] = struct{}{}

	if listErr != nil {
		return []*DiscoveryError{s.report(id, "", listErr.Error())}
	}
	if len(decls) == 0 {
		logger.Debug("Module declares no components, skipping.")
		return nil
	}

	var issues []*DiscoveryError
	added := 0
	for _, decl := range decls {
		d, err := resolve(decl)
		if err != nil {
			issues = append(issues, s.report(id, declName(decl), err.Error()))
			continue
		}
		for _, w := range s.reg.Register(d, d.loadNames) {
			if de, ok := w.(*DiscoveryError); ok {
				de.Module = id
				s.record(de)
				issues = append(issues, de)
			}
		}
		added++
	}
	logger.Debug("Module scanned.", "components_added", added, "components_declared", len(decls))
	return issues
}

// components calls into module code; a panic there is reported as an issue.
func components(m Module) (decls []Declaration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listing components panicked: %v", r)
		}
	}()
	return m.Components(), nil
}

func (s *scanner) report(module, name, reason string) *DiscoveryError {
	s.logger.Warn("Can't register component.", "module", module, "name", name, "reason", reason)
	e := &DiscoveryError{Module: module, Name: name, Reason: reason}
	s.record(e)
	return e
}

func (s *scanner) record(e *DiscoveryError) {
	s.issuesMu.Lock()
	defer s.issuesMu.Unlock()
	s.issues = append(s.issues, e)
}

func (s *scanner) allIssues() []error {
	s.issuesMu.Lock()
	defer s.issuesMu.Unlock()
	out := make([]error, len(s.issues))
	for i, e := range s.issues {
		out[i] = e
	}
	return out
}

func declName(decl Declaration) string {
	if len(decl.LoadNames) > 0 {
		return decl.LoadNames[0]
	}
	if decl.Component != nil {
		return decl.Component.String()
	}
	return "<unnamed>"
}

// resolve validates a declaration and picks its creation strategy. Candidates
// are tried in order: the accessor (only without parameters), the constructor
// with exact parameters, the constructor with a leading context, the factory
// with exact parameters, the factory with a leading context.
func resolve(decl Declaration) (*Descriptor, error) {
	if decl.Component == nil {
		return nil, fmt.Errorf("component type is required")
	}
	if len(decl.Signatures) == 0 {
		return nil, fmt.Errorf("at least one signature is required")
	}
	if len(decl.LoadNames) == 0 {
		return nil, fmt.Errorf("at least one load name is required")
	}
	names := make([]string, len(decl.LoadNames))
	for i, n := range decl.LoadNames {
		names[i] = strings.TrimSpace(n)
		if names[i] == "" {
			return nil, fmt.Errorf("load name %d is blank", i)
		}
	}
	for i, sig := range decl.Signatures {
		if sig == "" {
			return nil, fmt.Errorf("signature %d is empty", i)
		}
	}
	if decl.NewArgs != nil && decl.Args == nil {
		return nil, fmt.Errorf("argument constructor declared without an argument type")
	}

	loader := decl.Loader
	if loader == nil {
		loader = decl.Component
	}

	params := make([]reflect.Type, 0, len(decl.Params)+1)
	if decl.Args != nil {
		params = append(params, decl.Args)
	}
	params = append(params, decl.Params...)
	withCtx := append([]reflect.Type{contextType}, params...)

	d := &Descriptor{
		component:   decl.Component,
		loader:      loader,
		signatures:  append([]Signature(nil), decl.Signatures...),
		loadNames:   names,
		argType:     decl.Args,
		newArgs:     decl.NewArgs,
		extraParams: append([]reflect.Type(nil), decl.Params...),
		userName:    decl.UserName,
		summary:     decl.Summary,
		docName:     strings.TrimSpace(decl.DocName),
	}

	probes := []struct {
		fn       any
		params   []reflect.Type
		strategy Strategy
		ctx      bool
	}{
		{decl.Instance, nil, StaticAccessor, false},
		{decl.New, params, Constructor, false},
		{decl.New, withCtx, Constructor, true},
		{decl.Create, params, FactoryMethod, false},
		{decl.Create, withCtx, FactoryMethod, true},
	}
	for _, p := range probes {
		if p.strategy == StaticAccessor && len(params) != 0 {
			continue
		}
		fn, returnsErr, ok := matchFunc(p.fn, p.params, decl.Component)
		if !ok {
			continue
		}
		d.fn = fn
		d.returnsError = returnsErr
		d.strategy = p.strategy
		d.requiresContext = p.ctx
		return d, nil
	}

	if decl.Instance == nil && decl.New == nil && decl.Create == nil {
		return nil, fmt.Errorf("can't instantiate component %v: no creation function declared", decl.Component)
	}
	return nil, fmt.Errorf("can't instantiate component %v: no creation function accepts %v returning %v", decl.Component, params, decl.Component)
}

// matchFunc reports whether fn is a non-variadic function taking exactly
// params and returning a value assignable to component, optionally followed
// by an error.
func matchFunc(fn any, params []reflect.Type, component reflect.Type) (reflect.Value, bool, bool) {
	if fn == nil {
		return reflect.Value{}, false, false
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func || v.IsNil() || t.IsVariadic() {
		return reflect.Value{}, false, false
	}
	if t.NumIn() != len(params) {
		return reflect.Value{}, false, false
	}
	for i, p := range params {
		if t.In(i) != p {
			return reflect.Value{}, false, false
		}
	}
	switch t.NumOut() {
	case 1:
		if !t.Out(0).AssignableTo(component) {
			return reflect.Value{}, false, false
		}
		return v, false, true
	case 2:
		if !t.Out(0).AssignableTo(component) || t.Out(1) != errorType {
			return reflect.Value{}, false, false
		}
		return v, true, true
	default:
		return reflect.Value{}, false, false
	}
}
