package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"tradeJournal/internal/analytics"
	"tradeJournal/internal/app"
	"tradeJournal/internal/domain"
)

func newAddCmd(svc *app.JournalService) *cobra.Command {
	var (
		ticket     int64
		symbol     string
		direction  string
		volume     float64
		entryPrice float64
		stopLoss   float64
		takeProfit float64
		entryTime  string
		riskPct    float64
		strategy   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Journal a new open trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entered := time.Now()
			if entryTime != "" {
				var err error
				entered, err = time.Parse(time.RFC3339, entryTime)
				if err != nil {
					return fmt.Errorf("parse entry time: %w", err)
				}
			}

			trade := &domain.Trade{
				Ticket:       ticket,
				Symbol:       symbol,
				Direction:    domain.Direction(direction),
				Volume:       volume,
				EntryPrice:   entryPrice,
				StopLoss:     stopLoss,
				TakeProfit:   takeProfit,
				EntryTime:    entered,
				RiskPerTrade: riskPct,
				Strategy:     strategy,
				Status:       domain.StatusOpen,
			}
			if err := svc.AddTrade(cmd.Context(), trade); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Journaled trade %d (%s %s)\n", trade.Ticket, trade.Direction, trade.Symbol)
			return nil
		},
	}

	cmd.Flags().Int64Var(&ticket, "ticket", 0, "broker ticket number")
	cmd.Flags().StringVar(&symbol, "symbol", "", "instrument symbol")
	cmd.Flags().StringVar(&direction, "direction", "BUY", "trade direction (BUY, SELL, BUY_LIMIT, ...)")
	cmd.Flags().Float64Var(&volume, "volume", 0, "position size in lots")
	cmd.Flags().Float64Var(&entryPrice, "entry-price", 0, "entry price")
	cmd.Flags().Float64Var(&stopLoss, "stop-loss", 0, "stop loss price")
	cmd.Flags().Float64Var(&takeProfit, "take-profit", 0, "take profit price")
	cmd.Flags().StringVar(&entryTime, "entry-time", "", "entry time, RFC3339 (default now)")
	cmd.Flags().Float64Var(&riskPct, "risk", 0, "risk per trade, percent of account")
	cmd.Flags().StringVar(&strategy, "strategy", "", "strategy tag")
	cmd.MarkFlagRequired("ticket")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("volume")
	cmd.MarkFlagRequired("entry-price")

	return cmd
}

func newCloseCmd(svc *app.JournalService) *cobra.Command {
	var (
		exitPrice float64
		profit    float64
		exitTime  string
	)

	cmd := &cobra.Command{
		Use:   "close <ticket>",
		Short: "Close an open trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse ticket: %w", err)
			}

			exited := time.Now()
			if exitTime != "" {
				exited, err = time.Parse(time.RFC3339, exitTime)
				if err != nil {
					return fmt.Errorf("parse exit time: %w", err)
				}
			}

			trade, err := svc.CloseTrade(cmd.Context(), ticket, exitPrice, exited, profit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed trade %d with profit %.2f after %s\n",
				trade.Ticket, trade.Profit, analytics.TradeDuration(trade.EntryTime, trade.ExitTime))
			return nil
		},
	}

	cmd.Flags().Float64Var(&exitPrice, "exit-price", 0, "exit price")
	cmd.Flags().Float64Var(&profit, "profit", 0, "realized profit")
	cmd.Flags().StringVar(&exitTime, "exit-time", "", "exit time, RFC3339 (default now)")
	cmd.MarkFlagRequired("exit-price")

	return cmd
}

func newImportCmd(svc *app.JournalService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a terminal CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imported, err := svc.ImportCSV(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trades from %s\n", imported, args[0])
			return nil
		},
	}
	return cmd
}

func newOpenCmd(svc *app.JournalService) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "open",
		Short: "List currently open trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := svc.OpenTrades(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), trades)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "Ticket\tSymbol\tDir\tVolume\tEntry\tSL\tTP\tFloating\tDuration\t")
			for _, t := range trades {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.5f\t%.5f\t%.5f\t%.2f\t%s\t\n",
					t.Ticket, t.Symbol, t.Direction, t.Volume, t.EntryPrice,
					t.StopLoss, t.TakeProfit, t.FloatingPNL,
					analytics.TradeDuration(t.EntryTime, t.ExitTime))
			}
			return w.Flush()
		},
	}

	jsonFlag(cmd, &asJSON)
	return cmd
}
