package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tradeJournal/internal/analytics"
	"tradeJournal/internal/app"
)

func newStatsCmd(svc *app.JournalService) *cobra.Command {
	var periodName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			snap, err := svc.StatisticsFor(cmd.Context(), period)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), snap)
			}
			renderStats(cmd, snap)
			return nil
		},
	}

	periodFlag(cmd, &periodName)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func renderStats(cmd *cobra.Command, s analytics.Snapshot) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Period\t%s\n", s.Period)
	fmt.Fprintf(w, "Total Trades\t%d (W:%d L:%d BE:%d)\n", s.TotalTrades, s.WinningTrades, s.LosingTrades, s.BreakEvenTrades)
	fmt.Fprintf(w, "Net Profit\t%.2f\n", s.NetProfit)
	fmt.Fprintf(w, "Gross Profit / Loss\t%.2f / %.2f\n", s.GrossProfit, s.GrossLoss)
	fmt.Fprintf(w, "Win Rate\t%.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Profit Factor\t%s\n", formatRatio(s.ProfitFactor))
	fmt.Fprintf(w, "Average Win / Loss / Trade\t%.2f / %.2f / %.2f\n", s.AverageWin, s.AverageLoss, s.AverageTrade)
	fmt.Fprintf(w, "Average / Median R:R\t%.3f / %.3f\n", s.AverageRR, s.MedianRR)
	fmt.Fprintf(w, "Largest Win / Loss\t%.2f / %.2f\n", s.LargestWin, s.LargestLoss)
	fmt.Fprintf(w, "Best / Worst Trade\t%.2f%% / %.2f%%\n", s.BestTradePct, s.WorstTradePct)
	fmt.Fprintf(w, "Max Consecutive Wins / Losses\t%d / %d\n", s.MaxConsecutiveWins, s.MaxConsecutiveLosses)
	fmt.Fprintf(w, "Sharpe Ratio\t%.2f\n", s.SharpeRatio)
	fmt.Fprintf(w, "Recovery Factor\t%s\n", formatRatio(s.RecoveryFactor))
	fmt.Fprintf(w, "Expectancy\t%.2f\n", s.Expectancy)
	fmt.Fprintf(w, "Kelly Criterion\t%.2f%%\n", s.KellyCriterion)
	fmt.Fprintf(w, "Avg Position Size / Total Volume\t%.2f / %.2f\n", s.AveragePositionSize, s.TotalVolume)
	fmt.Fprintf(w, "Average Risk Per Trade\t%.2f\n", s.AverageRiskPerTrade)
	fmt.Fprintf(w, "Best / Worst Symbol\t%s / %s (of %d)\n", s.BestSymbol, s.WorstSymbol, s.SymbolsTraded)
	w.Flush()
}

func newRiskCmd(svc *app.JournalService) *cobra.Command {
	var periodName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Show risk metrics and recommendations for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			metrics, err := svc.RiskFor(cmd.Context(), period)
			if err != nil {
				return err
			}
			recs := analytics.RiskRecommendations(metrics)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), struct {
					analytics.RiskMetrics
					Recommendations []analytics.Recommendation `json:"recommendations"`
				}{metrics, recs})
			}
			renderRisk(cmd, metrics, recs)
			return nil
		},
	}

	periodFlag(cmd, &periodName)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func renderRisk(cmd *cobra.Command, m analytics.RiskMetrics, recs []analytics.Recommendation) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Risk Level\t%s (score %.2f)\n", m.RiskLevel, m.RiskScore)
	fmt.Fprintf(w, "Max Drawdown\t%.2f%%\n", m.MaxDrawdown)
	fmt.Fprintf(w, "Volatility\t%.2f%%\n", m.Volatility)
	fmt.Fprintf(w, "Sharpe Ratio\t%.2f\n", m.SharpeRatio)
	fmt.Fprintf(w, "Value at Risk (95%%)\t%.2f\n", m.ValueAtRisk95)
	fmt.Fprintf(w, "Expected Shortfall\t%.2f\n", m.ExpectedShortfall)
	w.Flush()

	if len(recs) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\nRecommendations:")
	for _, r := range recs {
		fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n", r.Priority, r.Category, r.Message)
	}
}

func newTrendCmd(svc *app.JournalService) *cobra.Command {
	var periodName string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show equity trend analysis for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := app.ParsePeriod(periodName)
			if err != nil {
				return err
			}
			metrics, err := svc.TrendFor(cmd.Context(), period)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), metrics)
			}
			renderTrend(cmd, metrics)
			return nil
		},
	}

	periodFlag(cmd, &periodName)
	jsonFlag(cmd, &asJSON)
	return cmd
}

func renderTrend(cmd *cobra.Command, m analytics.TrendMetrics) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Trend\t%s %s\n", m.Trend, m.Direction)
	fmt.Fprintf(w, "Equity Trend\t%.2f%%\n", m.EquityTrend)
	fmt.Fprintf(w, "Trend Strength\t%.2f\n", m.TrendStrength)
	fmt.Fprintf(w, "Consistency Score\t%.2f%%\n", m.ConsistencyScore)
	fmt.Fprintf(w, "Current Streak\t%+d\n", m.CurrentStreak)
	fmt.Fprintf(w, "Momentum Score\t%.2f\n", m.MomentumScore)
	w.Flush()
}

func formatRatio(r analytics.Ratio) string {
	if r.IsInfinite() {
		return "Infinite"
	}
	return fmt.Sprintf("%.2f", float64(r))
}
