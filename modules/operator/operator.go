// Package operator declares the capability interfaces and signatures shared
// by the built-in component modules.
package operator

import "github.com/specialistvlad/componentcatalog/internal/catalog"

const (
	SignatureBinaryOp catalog.Signature = "SignatureBinaryOp"
	SignatureFilter   catalog.Signature = "SignatureFilter"
	SignatureSource   catalog.Signature = "SignatureSource"
	SignatureSink     catalog.Signature = "SignatureSink"
)

// BinaryOp combines two numbers.
type BinaryOp interface {
	Apply(a, b float64) float64
}

// Filter decides whether a value is kept.
type Filter interface {
	Keep(v float64) bool
}

// Source produces a set of named string records.
type Source interface {
	Records() map[string]string
}

// Sink consumes a set of named string records.
type Sink interface {
	Emit(records map[string]string) error
}

// Capability types, for catalog queries and declarations.
var (
	BinaryOpType = catalog.TypeOf[BinaryOp]()
	FilterType   = catalog.TypeOf[Filter]()
	SourceType   = catalog.TypeOf[Source]()
	SinkType     = catalog.TypeOf[Sink]()
)
