package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func addOutputFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "output", "o", "text", "Output format. Options: 'text', 'json' or 'yaml'.")
}

// tablePrinter writes tab-aligned rows.
type tablePrinter struct {
	tw *tabwriter.Writer
}

func (p *tablePrinter) row(cols ...string) {
	fmt.Fprintln(p.tw, strings.Join(cols, "\t"))
}

// text writes a block verbatim below the current rows.
func (p *tablePrinter) text(s string) {
	_ = p.tw.Flush()
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		fmt.Fprintln(p.tw, line)
	}
}

// render writes v in the requested format. table draws the text form.
func render(w io.Writer, format string, v any, table func(p *tablePrinter)) error {
	switch strings.ToLower(format) {
	case "", "text":
		p := &tablePrinter{tw: tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)}
		table(p)
		return p.tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return usageError(fmt.Errorf("invalid output format '%s': must be 'text', 'json' or 'yaml'", format))
	}
}
