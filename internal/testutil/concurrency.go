package testutil

import (
	"sync"
	"time"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
)

// SlowModule is a shared module for concurrency tests. Its Components method
// sleeps before returning, widening the window in which other goroutines race
// the scan.
type SlowModule struct {
	SimpleModule
	Delay time.Duration
}

// Components implements the catalog.Module interface.
func (m *SlowModule) Components() []catalog.Declaration {
	time.Sleep(m.Delay)
	return m.SimpleModule.Components()
}

// ReentrantModule registers Nested with Catalog from inside its own
// Components call, the way a module that pulls in its dependencies would.
type ReentrantModule struct {
	SimpleModule
	Catalog *catalog.Catalog
	Nested  []catalog.Module

	// Err holds the error returned by the nested registration.
	Err error
}

// Components implements the catalog.Module interface.
func (m *ReentrantModule) Components() []catalog.Declaration {
	m.Err = m.Catalog.RegisterModule(m.Nested...)
	return m.SimpleModule.Components()
}

// BlockingModule signals Entered when its Components method starts and then
// blocks until Release is called, holding its registration open for as long
// as a test needs.
type BlockingModule struct {
	SimpleModule
	Entered chan struct{}

	release     chan struct{}
	enterOnce   sync.Once
	releaseOnce sync.Once
}

// NewBlockingModule creates a BlockingModule with the given ID.
func NewBlockingModule(id string, decls ...catalog.Declaration) *BlockingModule {
	return &BlockingModule{
		SimpleModule: SimpleModule{ID: id, Decls: decls},
		Entered:      make(chan struct{}),
		release:      make(chan struct{}),
	}
}

// Components implements the catalog.Module interface.
func (m *BlockingModule) Components() []catalog.Declaration {
	m.enterOnce.Do(func() { close(m.Entered) })
	<-m.release
	return m.SimpleModule.Components()
}

// Release unblocks Components. It is safe to call more than once.
func (m *BlockingModule) Release() {
	m.releaseOnce.Do(func() { close(m.release) })
}
