package testutil

import (
	"sync/atomic"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
)

// SimpleModule is a test helper for easily creating a mock module from a
// fixed list of declarations. It counts how often it is scanned.
type SimpleModule struct {
	ID    string
	Decls []catalog.Declaration

	calls atomic.Int32
}

// ModuleID implements the catalog.Module interface.
func (m *SimpleModule) ModuleID() string { return m.ID }

// Components implements the catalog.Module interface.
func (m *SimpleModule) Components() []catalog.Declaration {
	m.calls.Add(1)
	return m.Decls
}

// Calls returns how many times Components was called.
func (m *SimpleModule) Calls() int { return int(m.calls.Load()) }
