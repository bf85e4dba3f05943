package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pengelbrecht/calc/internal/binding/jsonbind"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer JSON-lines requests on stdin",
		Long: `Answer JSON-lines requests read from stdin, one response per line on stdout.

Request:  {"id": 1, "op": "add", "args": [2, 3]}
Response: {"id": 1, "result": 5}

Errors carry a kind of parse_error, unknown_function or argument_error.
The server stops at end of input.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving", "protocol", "json-lines")
			return jsonbind.NewServer(logger).Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
