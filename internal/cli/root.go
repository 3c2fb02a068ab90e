// Package cli builds the cobra command tree for the journal. Commands hold
// no business logic; they parse flags, call the application service and
// render the result as a table or JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tradeJournal/internal/app"
)

// New constructs the root command wired to the given service.
func New(svc *app.JournalService) *cobra.Command {
	root := &cobra.Command{
		Use:   "tradejournal",
		Short: "Trading journal statistics and risk analytics",
		Long: `Tradejournal keeps a record of your trades and computes performance
statistics, risk metrics and trend analysis over configurable periods.

Examples:
  tradejournal import trades.csv
  tradejournal stats --period weekly
  tradejournal risk --json
  tradejournal symbols`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newStatsCmd(svc),
		newRiskCmd(svc),
		newTrendCmd(svc),
		newSymbolsCmd(svc),
		newStrategiesCmd(svc),
		newOpenCmd(svc),
		newAddCmd(svc),
		newCloseCmd(svc),
		newImportCmd(svc),
	)

	return root
}

// periodFlag registers the shared --period flag on a reporting command.
func periodFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "period", "p", "all",
		"reporting period (daily, weekly, monthly, quarterly, half-year, yearly, all)")
}

func jsonFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "emit JSON instead of a table")
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
