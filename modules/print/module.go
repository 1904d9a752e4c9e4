// Package print provides a sink that writes records as text.
package print

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"github.com/specialistvlad/componentcatalog/internal/catalog"
	"github.com/specialistvlad/componentcatalog/modules/operator"
)

// Module implements the catalog.Module interface for this package.
type Module struct{}

// ModuleID implements catalog.Module.
func (m *Module) ModuleID() string { return "print" }

// Components implements catalog.Module.
func (m *Module) Components() []catalog.Declaration {
	return []catalog.Declaration{{
		Component:  operator.SinkType,
		Loader:     catalog.TypeOf[*Printer](),
		Signatures: []catalog.Signature{operator.SignatureSink},
		LoadNames:  []string{"print", "stdout"},
		Args:       catalog.TypeOf[*Args](),
		Params:     []reflect.Type{catalog.TypeOf[io.Writer]()},
		New:        New,
		UserName:   "Print",
		Summary:    "Writes records to the given writer.",
	}}
}

// Args configures the printer.
type Args struct {
	Prefix string `arg:"prefix" help:"Written before every line."`
}

// SetDefaults implements catalog.Defaulter.
func (a *Args) SetDefaults() {
	a.Prefix = "      "
}

// Printer writes each record on its own line.
type Printer struct {
	prefix string
	w      io.Writer
}

// New creates a Printer writing to w.
func New(args *Args, w io.Writer) *Printer {
	return &Printer{prefix: args.Prefix, w: w}
}

// Emit writes records sorted by key.
func (p *Printer) Emit(records map[string]string) error {
	if records == nil {
		_, err := fmt.Fprintf(p.w, "%s(null)\n", p.prefix)
		return err
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(p.w, "%s%s = %q\n", p.prefix, k, records[k]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) String() string { return fmt.Sprintf("print(prefix=%q)", p.prefix) }
