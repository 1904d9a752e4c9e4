package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/componentcatalog/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// state is shared by the command tree of one invocation.
type state struct {
	v       *viper.Viper
	cfgFile string
	outW    io.Writer
	logW    io.Writer
	app     *app.App
}

// NewRootCommand builds the command tree. Command output goes to outW and
// log output to logW.
func NewRootCommand(outW, logW io.Writer) *cobra.Command {
	s := &state{v: viper.New(), outW: outW, logW: logW}

	root := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and instantiate registered components",
		Long: `catalog lists the components compiled into this binary, describes their
settings and creates instances from textual settings such as "cutoff=0.9".`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: s.setup,
	}
	root.SetOut(outW)
	root.SetErr(outW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	pf := root.PersistentFlags()
	pf.StringVarP(&s.cfgFile, "config", "c", "", "config file (YAML)")
	pf.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.Bool("strict", false, "Fail when a built-in module cannot be registered cleanly.")
	bindFlags(s.v, pf)

	root.AddCommand(
		newListCommand(s),
		newSignaturesCommand(s),
		newDescribeCommand(s),
		newCreateCommand(s),
	)
	return root
}

// setup loads configuration and builds the app before any subcommand runs.
func (s *state) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(s.v, s.cfgFile)
	if err != nil {
		return usageError(err)
	}
	a, err := app.NewApp(s.logW, cfg)
	if err != nil {
		return err
	}
	s.app = a
	return nil
}

// Execute runs the command line in args. Usage problems are returned as an
// *ExitError with code 2; any other failure has code 1.
func Execute(args []string, outW, logW io.Writer) error {
	root := NewRootCommand(outW, logW)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return usageError(err)
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
