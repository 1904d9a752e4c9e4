// Package filter provides numeric filters.
package filter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/internal/ctxlog"
	"github.com/specialistvlad/componentcatalog/modules/operator"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// ModuleID implements catalog.Module.
func (m *Module) ModuleID() string { return "filter" }

// Components implements catalog.Module.
func (m *Module) Components() []catalog.Declaration {
	return []catalog.Declaration{
		{
			Component:  operator.FilterType,
			Loader:     catalog.TypeOf[*Threshold](),
			Signatures: []catalog.Signature{operator.SignatureFilter},
			LoadNames:  []string{"threshold"},
			Args:       catalog.TypeOf[*ThresholdArgs](),
			New:        NewThreshold,
			UserName:   "Threshold",
			Summary:    "Keeps values above a cutoff.",
		},
		{
			Component:  operator.FilterType,
			Loader:     catalog.TypeOf[*Range](),
			Signatures: []catalog.Signature{operator.SignatureFilter},
			LoadNames:  []string{"range", "between"},
			Args:       catalog.TypeOf[*RangeArgs](),
			NewArgs:    func() any { return &RangeArgs{Min: 0, Max: 1} },
			Create:     CreateRange,
			UserName:   "Range",
			Summary:    "Keeps values within a closed interval.",
			DocName:    "filter-range",
		},
	}
}

// ThresholdArgs configures a Threshold filter.
type ThresholdArgs struct {
	Cutoff    float64 `arg:"cutoff" help:"Values below this are dropped."`
	Inclusive bool    `arg:"inclusive" help:"Keep values equal to the cutoff."`
}

// SetDefaults implements catalog.Defaulter.
func (a *ThresholdArgs) SetDefaults() {
	a.Cutoff = 0.5
}

// Threshold keeps values greater than its cutoff.
type Threshold struct {
	cutoff    float64
	inclusive bool
}

// NewThreshold creates a Threshold from its arguments.
func NewThreshold(args *ThresholdArgs) *Threshold {
	return &Threshold{cutoff: args.Cutoff, inclusive: args.Inclusive}
}

// Cutoff returns the configured cutoff.
func (f *Threshold) Cutoff() float64 { return f.cutoff }

func (f *Threshold) Keep(v float64) bool {
	if f.inclusive {
		return v >= f.cutoff
	}
	return v > f.cutoff
}

func (f *Threshold) String() string {
	if f.inclusive {
		return fmt.Sprintf("threshold(>= %g)", f.cutoff)
	}
	return fmt.Sprintf("threshold(> %g)", f.cutoff)
}

// RangeArgs configures a Range filter.
type RangeArgs struct {
	Min float64 `arg:"min" help:"Lower bound, inclusive."`
	Max float64 `arg:"max" help:"Upper bound, inclusive."`
}

// Range keeps values within a closed interval.
type Range struct {
	min, max float64
}

// CreateRange creates a Range. It fails when min is greater than max.
func CreateRange(ctx context.Context, args *RangeArgs) (operator.Filter, error) {
	if args.Min > args.Max {
		return nil, fmt.Errorf("min %g is greater than max %g", args.Min, args.Max)
	}
	ctxlog.FromContext(ctx).Debug("Creating range filter.", "min", args.Min, "max", args.Max)
	return &Range{min: args.Min, max: args.Max}, nil
}

func (f *Range) Keep(v float64) bool { return v >= f.min && v <= f.max }

func (f *Range) String() string { return fmt.Sprintf("range[%g, %g]", f.min, f.max) }
