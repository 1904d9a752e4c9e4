// Package arith provides binary arithmetic operators.
package arith

import (
	"math"
	"reflect"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/modules/operator"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// ModuleID implements catalog.Module.
func (m *Module) ModuleID() string { return "arith" }

// Components implements catalog.Module.
func (m *Module) Components() []catalog.Declaration {
	return []catalog.Declaration{
		{
			Component:  operator.BinaryOpType,
			Loader:     reflect.TypeOf(sumOp{}),
			Signatures: []catalog.Signature{operator.SignatureBinaryOp},
			LoadNames:  []string{"sum", "add"},
			Instance:   Sum,
			UserName:   "Sum",
			Summary:    "Adds two numbers.",
		},
		{
			Component:  operator.BinaryOpType,
			Loader:     catalog.TypeOf[*Product](),
			Signatures: []catalog.Signature{operator.SignatureBinaryOp},
			LoadNames:  []string{"product", "mul", "multiply"},
			New:        NewProduct,
			UserName:   "Product",
			Summary:    "Multiplies two numbers.",
		},
		{
			Component:  operator.BinaryOpType,
			Signatures: []catalog.Signature{operator.SignatureBinaryOp},
			LoadNames:  []string{"max"},
			Create:     CreateMax,
			Summary:    "Returns the larger of two numbers.",
		},
	}
}

type sumOp struct{}

func (sumOp) Apply(a, b float64) float64 { return a + b }
func (sumOp) String() string             { return "sum" }

var sum operator.BinaryOp = sumOp{}

// Sum returns the shared addition operator.
func Sum() operator.BinaryOp { return sum }

// Product multiplies its operands.
type Product struct{}

// NewProduct creates a Product.
func NewProduct() *Product { return &Product{} }

func (p *Product) Apply(a, b float64) float64 { return a * b }
func (p *Product) String() string             { return "product" }

type maxOp struct{}

func (maxOp) Apply(a, b float64) float64 { return math.Max(a, b) }
func (maxOp) String() string             { return "max" }

// CreateMax creates the max operator.
func CreateMax() (operator.BinaryOp, error) {
	return maxOp{}, nil
}
