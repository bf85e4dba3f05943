package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/calc/internal/script"
	"github.com/pengelbrecht/calc/internal/styles"
)

func newRunCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Lua or Tengo script",
		Long: `Run a .lua or .tengo script with the calc module loaded.

Lua scripts call calc.add(a, b) and friends; values they return are printed.
Tengo scripts import("calc"); the value assigned to result is printed.
With --watch the script re-runs whenever it changes, until interrupted.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], watch)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the script when it changes")
	return cmd
}

func runScript(cmd *cobra.Command, path string, watch bool) error {
	if _, err := script.Detect(path); err != nil {
		return &UsageError{Err: err}
	}
	runner := &script.Runner{Out: cmd.OutOrStdout(), Precision: cfg.Output.GetPrecision()}
	if !watch {
		return runner.Run(cmd.Context(), path)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := script.NewWatcher(path, cfg.Watch.GetDebounce())
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer w.Stop()

	errOut := cmd.ErrOrStderr()
	runOnce := func() {
		if err := runner.Run(ctx, path); err != nil {
			fmt.Fprintln(errOut, styles.RenderError("Error: "+err.Error()))
		}
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			logger.Info("script event", "type", ev.Type.String(), "path", ev.Path)
			if ev.Type == script.Removed {
				fmt.Fprintln(errOut, styles.RenderDim("waiting for "+path))
				continue
			}
			runOnce()
		case err := <-w.Errors():
			logger.Warn("watch error", "err", err)
		}
	}
}
