// Package cmd implements the calc command line.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/calc/internal/binding"
	"github.com/pengelbrecht/calc/internal/binding/jsonbind"
	"github.com/pengelbrecht/calc/internal/config"
	"github.com/pengelbrecht/calc/internal/format"
	"github.com/pengelbrecht/calc/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	configPath string
	precision  int
	jsonOutput bool

	cfg    config.Config
	logger = logging.Discard()
)

// UsageError marks a malformed command line.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// Execute runs the command line given by args (without the program name).
func Execute(ctx context.Context, args []string) error {
	configPath, precision, jsonOutput = "", config.DefaultPrecision, false
	cfg = config.Default()

	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	ops := make([]string, 0, 4)
	for _, e := range binding.Entries() {
		ops = append(ops, e.Short)
	}

	root := &cobra.Command{
		Use:   "calc A B OP",
		Short: "Perform basic arithmetic operations",
		Long: fmt.Sprintf(`Perform basic arithmetic operations.

OP is one of %s, a full operation name, or its symbol.
Division by zero yields 0.0.`, strings.Join(ops, ", ")),
		Example: `  calc 5 3 add     # 5.0 + 3.0 = 8.0
  calc 10 2 div    # 10.0 / 2.0 = 5.0
  calc 7 4 sub     # 7.0 - 4.0 = 3.0
  calc 3 6 mul     # 3.0 * 6.0 = 18.0
  calc -2 4 '*' --json`,
		Args:              usageArgs(cobra.ExactArgs(3)),
		PersistentPreRunE: setup,
		RunE:              runCalc,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CALC_CONFIG or the user config dir)")
	root.PersistentFlags().IntVar(&precision, "precision", config.DefaultPrecision, "decimals to print, -1 for shortest")
	root.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	root.AddCommand(newOpsCmd(), newReplCmd(), newRunCmd(), newServeCmd(), newVersionCmd())
	return root
}

// setup resolves configuration and the logger before any command runs.
// Precedence is flags, then environment, then the config file.
func setup(cmd *cobra.Command, _ []string) error {
	env, err := config.ParseEnv(".env")
	if err != nil {
		return err
	}
	logger = logging.New(cmd.ErrOrStderr(), env.LogLevel)
	slog.SetDefault(logger)

	if configPath != "" {
		env.ConfigPath = configPath
	}
	c, path, err := env.Resolve()
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	logger.Debug("config resolved", "path", path, "format", c.Output.GetFormat())

	if cmd.Flags().Changed("precision") {
		if c.Output == nil {
			c.Output = &config.OutputConfig{}
		}
		p := precision
		c.Output.Precision = &p
		if err := c.Output.Validate(); err != nil {
			return &UsageError{Err: err}
		}
	}
	cfg = c
	return nil
}

type calcResult struct {
	A      jsonbind.Number `json:"a"`
	B      jsonbind.Number `json:"b"`
	Op     string          `json:"op"`
	Result jsonbind.Number `json:"result"`
}

func runCalc(cmd *cobra.Command, args []string) error {
	e, a, b, err := binding.ParseStrings(args[2], args[0], args[1])
	if err != nil {
		return err
	}
	result := e.Fn(a, b)
	logger.Debug("evaluated", "op", e.Name, "a", a, "b", b, "result", result)

	out := cmd.OutOrStdout()
	if jsonOutput || cfg.Output.GetFormat() == config.FormatJSON {
		payload := calcResult{
			A:      jsonbind.Number(a),
			B:      jsonbind.Number(b),
			Op:     e.Name,
			Result: jsonbind.Number(result),
		}
		if err := json.NewEncoder(out).Encode(payload); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}

	fmt.Fprintln(out, format.Expression(a, e.Symbol, b, result, cfg.Output.GetPrecision()))
	return nil
}
