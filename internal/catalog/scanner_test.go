package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sigShape Signature = "SignatureShape"

type shape interface {
	Area() float64
}

type square struct{ side float64 }

func (s *square) Area() float64 { return s.side * s.side }

type squareArgs struct {
	Side float64 `arg:"side"`
}

func (a *squareArgs) SetDefaults() { a.Side = 1 }

var (
	shapeType      = TypeOf[shape]()
	squareArgsType = TypeOf[*squareArgs]()
	writerType     = TypeOf[io.Writer]()
)

func shapeDecl(names ...string) Declaration {
	return Declaration{
		Component:  shapeType,
		Signatures: []Signature{sigShape},
		LoadNames:  names,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolve_Strategies(t *testing.T) {
	newSquare := func() shape { return &square{side: 1} }
	newSquareCtx := func(context.Context) shape { return &square{side: 1} }
	newSquareArgs := func(a *squareArgs) (*square, error) { return &square{side: a.Side}, nil }

	testCases := []struct {
		name       string
		mutate     func(d *Declaration)
		strategy   Strategy
		ctx        bool
		returnsErr bool
	}{
		{
			name:     "accessor",
			mutate:   func(d *Declaration) { d.Instance = newSquare },
			strategy: StaticAccessor,
		},
		{
			name:     "constructor",
			mutate:   func(d *Declaration) { d.New = newSquare },
			strategy: Constructor,
		},
		{
			name:     "constructor with context",
			mutate:   func(d *Declaration) { d.New = newSquareCtx },
			strategy: Constructor,
			ctx:      true,
		},
		{
			name:     "factory",
			mutate:   func(d *Declaration) { d.Create = newSquare },
			strategy: FactoryMethod,
		},
		{
			name:     "factory with context",
			mutate:   func(d *Declaration) { d.Create = newSquareCtx },
			strategy: FactoryMethod,
			ctx:      true,
		},
		{
			name: "accessor wins over constructor",
			mutate: func(d *Declaration) {
				d.Instance = newSquare
				d.New = newSquare
			},
			strategy: StaticAccessor,
		},
		{
			name: "exact constructor wins over context factory",
			mutate: func(d *Declaration) {
				d.New = newSquare
				d.Create = newSquareCtx
			},
			strategy: Constructor,
		},
		{
			name: "accessor ignored with arguments",
			mutate: func(d *Declaration) {
				d.Args = squareArgsType
				d.Instance = newSquare
				d.Create = newSquareArgs
			},
			strategy:   FactoryMethod,
			returnsErr: true,
		},
		{
			name: "mismatched constructor falls through to factory",
			mutate: func(d *Declaration) {
				d.Args = squareArgsType
				d.New = newSquare
				d.Create = newSquareArgs
			},
			strategy:   FactoryMethod,
			returnsErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decl := shapeDecl("square")
			tc.mutate(&decl)

			d, err := resolve(decl)
			require.NoError(t, err)
			assert.Equal(t, tc.strategy, d.Strategy())
			assert.Equal(t, tc.ctx, d.RequiresContext())
			assert.Equal(t, tc.returnsErr, d.returnsError)
		})
	}
}

func TestResolve_Rejects(t *testing.T) {
	valid := func() shape { return &square{} }

	testCases := []struct {
		name     string
		decl     Declaration
		contains string
	}{
		{"no component", Declaration{Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, New: valid}, "component type is required"},
		{"no signatures", Declaration{Component: shapeType, LoadNames: []string{"a"}, New: valid}, "at least one signature"},
		{"empty signature", Declaration{Component: shapeType, Signatures: []Signature{""}, LoadNames: []string{"a"}, New: valid}, "signature 0 is empty"},
		{"no names", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, New: valid}, "at least one load name"},
		{"blank name", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a", "  "}, New: valid}, "load name 1 is blank"},
		{"arg constructor without args", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, NewArgs: func() any { return nil }, New: valid}, "without an argument type"},
		{"no creation function", shapeDecl("a"), "no creation function declared"},
		{"wrong return type", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, New: func() int { return 1 }}, "no creation function accepts"},
		{"variadic", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, New: func(...int) shape { return nil }}, "no creation function accepts"},
		{"not a function", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, New: 42}, "no creation function accepts"},
		{"second result not error", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, New: func() (shape, int) { return nil, 0 }}, "no creation function accepts"},
		{"missing extra parameter", Declaration{Component: shapeType, Signatures: []Signature{sigShape}, LoadNames: []string{"a"}, Params: []reflect.Type{writerType}, New: valid}, "no creation function accepts"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolve(tc.decl)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	decl := shapeDecl(" Square ", "box")
	decl.New = func() *square { return &square{} }
	decl.DocName = " doc "

	d, err := resolve(decl)
	require.NoError(t, err)
	assert.Equal(t, shapeType, d.LoaderType(), "loader defaults to the component type")
	assert.Equal(t, "Square", d.Name())
	assert.Equal(t, []string{"Square", "box"}, d.LoadNames())
	assert.Equal(t, "doc", d.DocName())
	assert.True(t, d.IsHidden())
	assert.Equal(t, 0, d.ExtraArgCount())
}

func TestScan(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := newRegistry(logger)

	good := shapeDecl("square")
	good.New = func() shape { return &square{} }
	bad := shapeDecl("broken")

	returned := reg.scanner.scan(
		NewModule("shapes", good, bad),
		NewModule("shapes", good), // same ID, skipped
		NewModule(""),
		&panickingModule{},
		&transientModule{},
		NewModule("empty"),
		nil,
	)

	assert.Len(t, reg.AllDescriptors(), 1)
	_, ok := reg.FindByKey("SQUARE", sigShape)
	assert.True(t, ok)

	issues := reg.scanner.allIssues()
	require.Len(t, issues, 3)
	require.Len(t, returned, 3)
	for i, e := range returned {
		assert.Same(t, e, issues[i], "the pass returns what it records")
	}
	for _, err := range issues {
		assert.ErrorIs(t, err, ErrDiscovery)
	}

	var de *DiscoveryError
	require.True(t, errors.As(issues[0], &de))
	assert.Equal(t, "shapes", de.Module)
	assert.Equal(t, "broken", de.Name)
	assert.Contains(t, issues[1].Error(), "empty ID")
	assert.Contains(t, issues[2].Error(), "listing components panicked: boom")

	assert.Contains(t, logs.String(), "Module already scanned, skipping.")
	assert.Contains(t, logs.String(), "Skipping transient module.")
	assert.Contains(t, logs.String(), "Module declares no components, skipping.")
	require.True(t, reg.scanner.mu.TryLock(), "commit lock must be released")
	reg.scanner.mu.Unlock()
}

func TestScan_NoOpRescan(t *testing.T) {
	reg := newRegistry(discardLogger())
	decl := shapeDecl("square")
	decl.New = func() shape { return &square{} }
	reg.scanner.scan(NewModule("shapes", decl))

	before := reg.AllDescriptors()
	require.Len(t, before, 1)
	sigsBefore := reg.AllSignatures()

	assert.Empty(t, reg.scanner.scan(NewModule("shapes", decl)))

	assert.Equal(t, before, reg.AllDescriptors())
	assert.Equal(t, sigsBefore, reg.AllSignatures())
}

type panickingModule struct{}

func (panickingModule) ModuleID() string          { return "panicky" }
func (panickingModule) Components() []Declaration { panic("boom") }

type transientModule struct{}

func (transientModule) ModuleID() string          { return "generated" }
func (transientModule) Components() []Declaration { panic("must not be called") }
func (transientModule) Transient() bool           { return true }

// gatedModule blocks in Components until its gate is closed.
type gatedModule struct {
	id      string
	decls   []Declaration
	entered chan struct{}
	gate    chan struct{}
}

func (m *gatedModule) ModuleID() string { return m.id }
func (m *gatedModule) Components() []Declaration {
	close(m.entered)
	<-m.gate
	return m.decls
}

func TestScan_ModuleCodeRunsOutsideCommitLock(t *testing.T) {
	reg := newRegistry(discardLogger())
	gated := &gatedModule{id: "gated", entered: make(chan struct{}), gate: make(chan struct{})}
	defer close(gated.gate)

	go reg.scanner.scan(gated)
	<-gated.entered

	decl := shapeDecl("square")
	decl.New = func() shape { return &square{} }
	done := make(chan struct{})
	go func() {
		defer close(done)
		reg.scanner.scan(NewModule("shapes", decl))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("a slow module blocked an unrelated registration")
	}
	_, ok := reg.FindByKey("square", sigShape)
	assert.True(t, ok)
}
