package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pengelbrecht/calc/internal/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Long: `Start an interactive session.

Enter lines such as "add 2 3", "div 5 0" or "2 * 3". Type help for a
summary, and quit, exit, Esc or Ctrl+C to leave.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl.Run(repl.Options{
				Precision:   cfg.Output.GetPrecision(),
				HistorySize: cfg.Repl.GetHistorySize(),
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
