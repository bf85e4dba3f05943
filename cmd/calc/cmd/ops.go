package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pengelbrecht/calc/internal/binding"
	"github.com/pengelbrecht/calc/internal/styles"
)

type opInfo struct {
	Name   string `json:"name"`
	Short  string `json:"short"`
	Symbol string `json:"symbol"`
	Doc    string `json:"doc"`
}

func newOpsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the available operations",
		Long: `List the four entry points exposed to scripts and the JSON-lines
protocol, with the short token and symbol accepted on the command line.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOps(cmd, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}

func runOps(cmd *cobra.Command, asJSON bool) error {
	entries := binding.Entries()
	out := cmd.OutOrStdout()

	if asJSON {
		infos := make([]opInfo, 0, len(entries))
		for _, e := range entries {
			infos = append(infos, opInfo{Name: e.Name, Short: e.Short, Symbol: e.Symbol, Doc: e.Doc})
		}
		if err := json.NewEncoder(out).Encode(infos); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.ColorGray)).
		Headers("NAME", "TOKEN", "SYMBOL", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.LabelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, e := range entries {
		t.Row(e.Name, e.Short, e.Symbol, e.Doc)
	}

	fmt.Fprintln(out, t.Render())
	return nil
}
