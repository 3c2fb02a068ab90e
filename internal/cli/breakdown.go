package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tradeJournal/internal/app"
)

func newSymbolsCmd(svc *app.JournalService) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Break down performance by instrument",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := svc.SymbolBreakdown(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Symbol\tTrades\tWinRate\tNetProfit\tAvgTrade\tBest\tWorst\tVolume\t")
			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
					s.Symbol, s.TotalTrades, s.WinRate, s.NetProfit,
					s.AverageTrade, s.BestTrade, s.WorstTrade, s.TotalVolume)
			}
			return w.Flush()
		},
	}

	jsonFlag(cmd, &asJSON)
	return cmd
}

func newStrategiesCmd(svc *app.JournalService) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "Break down performance by strategy tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := svc.StrategyBreakdown(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), stats)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Strategy\tTrades\tWinRate\tNetProfit\tAvgTrade\tPF\tAvgRR\tVolume\t")
			for _, s := range stats {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%s\t%.3f\t%.2f\t\n",
					s.Strategy, s.TotalTrades, s.WinRate, s.NetProfit,
					s.AverageTrade, formatRatio(s.ProfitFactor), s.AverageRR, s.TotalVolume)
			}
			return w.Flush()
		},
	}

	jsonFlag(cmd, &asJSON)
	return cmd
}
