package testutil

import (
	"github.com/specialistvlad/componentcatalog/internal/catalog"
)

// SignatureNoOp groups the components declared by NoOpModule.
const SignatureNoOp catalog.Signature = "SignatureNoOp"

// NoOp is the capability of NoOpModule's component.
type NoOp interface {
	Do()
}

type noop struct{}

func (noop) Do() {}

// NoOpModule declares a single "noop" component that takes no settings and
// does nothing. It's useful for tests that only care about registration.
type NoOpModule struct {
	// ID defaults to "noop".
	ID string
}

// ModuleID implements the catalog.Module interface.
func (m *NoOpModule) ModuleID() string {
	if m.ID == "" {
		return "noop"
	}
	return m.ID
}

// Components implements the catalog.Module interface.
func (m *NoOpModule) Components() []catalog.Declaration {
	return []catalog.Declaration{{
		Component:  catalog.TypeOf[NoOp](),
		Signatures: []catalog.Signature{SignatureNoOp},
		LoadNames:  []string{"noop"},
		New:        func() NoOp { return noop{} },
		UserName:   "No-op",
	}}
}
