package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCommand(s *state) *cobra.Command {
	var (
		sig    string
		all    bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered components",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := s.app.List(sig, all)
			if err != nil {
				return err
			}
			return render(s.outW, format, infos, func(p *tablePrinter) {
				p.row("NAME", "ALIASES", "SIGNATURES", "STRATEGY", "SUMMARY")
				for _, ci := range infos {
					p.row(ci.Name, strings.Join(ci.Aliases, ","), strings.Join(ci.Signatures, ","), ci.Strategy, ci.Summary)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&sig, "signature", "s", "", "Only list components with this signature.")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden components.")
	addOutputFlag(cmd, &format)
	return cmd
}

func newSignaturesCommand(s *state) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "List known signatures",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sigs := s.app.Signatures()
			return render(s.outW, format, sigs, func(p *tablePrinter) {
				p.row("SIGNATURE", "DISPLAY NAME", "COMPONENTS")
				for _, si := range sigs {
					p.row(si.Name, si.DisplayName, fmt.Sprint(si.Components))
				}
			})
		},
	}
	addOutputFlag(cmd, &format)
	return cmd
}

func newDescribeCommand(s *state) *cobra.Command {
	var (
		sig    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "describe NAME",
		Short: "Show a component and the settings it accepts",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := s.app.Describe(args[0], sig)
			if err != nil {
				return err
			}
			return render(s.outW, format, infos, func(p *tablePrinter) {
				for i, ci := range infos {
					if i > 0 {
						p.row("")
					}
					p.row("Name:", ci.Name)
					p.row("Aliases:", strings.Join(ci.Aliases, ", "))
					p.row("Signatures:", strings.Join(ci.Signatures, ", "))
					p.row("Strategy:", ci.Strategy)
					p.row("Component:", ci.Component)
					if ci.UserName != "" {
						p.row("Display name:", ci.UserName)
					}
					if ci.Summary != "" {
						p.row("Summary:", ci.Summary)
					}
					if ci.DocName != "" {
						p.row("Docs:", ci.DocName)
					}
					if len(ci.ExtraParams) > 0 {
						p.row("Parameters:", strings.Join(ci.ExtraParams, ", "))
					}
					if ci.RequiresContext {
						p.row("Context:", "required")
					}
					if ci.Arguments == "" {
						p.row("Settings:", "none")
						continue
					}
					p.row("Settings:", ci.Arguments)
					p.text(ci.Usage)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&sig, "signature", "s", "", "Signature to look the name up under.")
	addOutputFlag(cmd, &format)
	return cmd
}

func newCreateCommand(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "create SIGNATURE NAME [SETTINGS...]",
		Short: "Create a component and print it",
		Long: `create instantiates the named component with the given settings and
prints the result. Settings are name=value pairs, for example:

  catalog create filter threshold cutoff=0.9 inclusive=true

Only components without extra creation parameters can be created here.`,
		Args: minimumArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := strings.Join(args[2:], " ")
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			inst, err := s.app.Create(ctx, args[0], args[1], settings)
			if err != nil {
				return err
			}
			if st, ok := inst.(fmt.Stringer); ok {
				fmt.Fprintln(s.outW, st.String())
			} else {
				fmt.Fprintf(s.outW, "%T %+v\n", inst, inst)
			}
			return nil
		},
	}
}
