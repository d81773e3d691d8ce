package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/leapstack-labs/bindgen/internal/diag"
	"github.com/leapstack-labs/bindgen/internal/host"
	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.star> [args...]",
		Short: "Run a Starlark driver script against the configured pipeline",
		Long: `Run a Starlark driver script. The script sees two predeclared names:

  code_generator   the boundary module (set_globals, parse, transform,
                   generate_code, generate_extracts, generate_api,
                   generate_xml, generate_type_hints)
  argv             the arguments following the script path

Script print() output goes to standard output; generator diagnostics go to
standard error.`,
		Example: `  # Run a driver script with the default dry-run pipeline
  bindgen run build.star

  # Pass arguments through to the script
  bindgen run build.star --  --module PyQt6.QtCore`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], args[1:])
		},
	}
	return cmd
}

func runScript(cmd *cobra.Command, scriptPath string, scriptArgs []string) error {
	c := getConfig()

	rep := diag.New(diag.WithOutput(cmd.ErrOrStderr()))
	pipe, err := pipeline.New(c.Pipeline, rep)
	if err != nil {
		return err
	}

	mod := host.New(pipe, rep)

	argv := make([]starlark.Value, len(scriptArgs))
	for i, a := range scriptArgs {
		argv[i] = starlark.String(a)
	}
	argvList := starlark.NewList(argv)
	argvList.Freeze()

	predeclared := starlark.StringDict{
		host.ModuleName: mod.Struct(),
		"argv":          argvList,
	}

	thread := &starlark.Thread{
		Name: scriptPath,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		},
	}

	if _, err := starlark.ExecFile(thread, scriptPath, nil, predeclared); err != nil { //nolint:staticcheck // SA1019: will migrate to ExecFileOptions later
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return errors.New(evalErr.Backtrace())
		}
		return err
	}
	return nil
}
