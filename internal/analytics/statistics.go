package analytics

import (
	"encoding/json"
	"math"
	"sort"

	"tradeJournal/internal/domain"
)

// Ratio is a float64 whose JSON form renders the Infinite sentinel as the
// string "Infinite" so snapshots stay directly serializable.
type Ratio float64

// MarshalJSON implements json.Marshaler.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if IsInfinite(float64(r)) {
		return []byte(`"Infinite"`), nil
	}
	return json.Marshal(float64(r))
}

// IsInfinite reports whether the ratio carries the Infinite sentinel.
func (r Ratio) IsInfinite() bool { return IsInfinite(float64(r)) }

// Snapshot is the comprehensive statistics view computed from one collection
// of closed trades. It is a plain value object: recomputed on demand, never
// persisted, and every field is populated even for an empty collection.
type Snapshot struct {
	Period string `json:"period"`

	TotalTrades     int `json:"total_trades"`
	WinningTrades   int `json:"winning_trades"`
	LosingTrades    int `json:"losing_trades"`
	BreakEvenTrades int `json:"break_even_trades"`

	NetProfit   float64 `json:"net_profit"`
	GrossProfit float64 `json:"gross_profit"`
	GrossLoss   float64 `json:"gross_loss"`

	WinRate      float64 `json:"win_rate"`
	ProfitFactor Ratio   `json:"profit_factor"`

	AverageWin   float64 `json:"average_win"`
	AverageLoss  float64 `json:"average_loss"`
	AverageTrade float64 `json:"average_trade"`
	AverageRR    float64 `json:"average_rr"`
	MedianRR     float64 `json:"median_rr"`

	LargestWin    float64 `json:"largest_win"`
	LargestLoss   float64 `json:"largest_loss"`
	BestTradePct  float64 `json:"best_trade_pct"`
	WorstTradePct float64 `json:"worst_trade_pct"`

	MaxConsecutiveWins   int     `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	RecoveryFactor       Ratio   `json:"recovery_factor"`
	Expectancy           float64 `json:"expectancy"`
	KellyCriterion       float64 `json:"kelly_criterion"`

	AveragePositionSize float64 `json:"average_position_size"`
	TotalVolume         float64 `json:"total_volume"`
	AverageRiskPerTrade float64 `json:"average_risk_per_trade"`

	BestSymbol    string `json:"best_symbol"`
	WorstSymbol   string `json:"worst_symbol"`
	SymbolsTraded int    `json:"symbols_traded"`
}

// EmptyStatistics returns the documented zero-value snapshot: every numeric
// field zeroed and string fields set to "N/A". Callers render it as
// "insufficient data", never as an error.
func EmptyStatistics(period string) Snapshot {
	return Snapshot{
		Period:      period,
		BestSymbol:  "N/A",
		WorstSymbol: "N/A",
	}
}

// GenerateStatistics computes a full snapshot over the closed trades in the
// given collection, labeled with the supplied period. Trades that are not
// CLOSED are ignored; an empty (or all-open) collection yields
// EmptyStatistics(period).
func GenerateStatistics(trades []*domain.Trade, period string) Snapshot {
	closed := closedTrades(trades)
	if len(closed) == 0 {
		return EmptyStatistics(period)
	}

	snap := EmptyStatistics(period)
	snap.TotalTrades = len(closed)

	profits := make([]float64, 0, len(closed))
	rrs := make([]float64, 0, len(closed))
	symbolProfit := make(map[string]float64)

	var grossProfit, grossLoss float64
	var sumWins, sumLosses float64
	var largestWin, largestLoss float64
	var totalVolume, totalRisk float64

	for _, t := range closed {
		p := t.Profit
		profits = append(profits, p)
		symbolProfit[t.Symbol] += p

		switch {
		case p > 0:
			snap.WinningTrades++
			grossProfit += p
			sumWins += p
			if p > largestWin {
				largestWin = p
			}
		case p < 0:
			snap.LosingTrades++
			grossLoss += -p
			sumLosses += p
			if p < largestLoss {
				largestLoss = p
			}
		default:
			snap.BreakEvenTrades++
		}

		if rr, ok := RiskReward(t.EntryPrice, t.ExitPrice, t.StopLoss, t.Direction); ok {
			rrs = append(rrs, rr)
		}

		totalVolume += t.Volume
		totalRisk += t.RiskPerTrade
	}

	snap.NetProfit = round2(grossProfit - grossLoss)
	snap.GrossProfit = round2(grossProfit)
	snap.GrossLoss = round2(grossLoss)

	snap.WinRate = round2(float64(snap.WinningTrades) / float64(snap.TotalTrades) * 100)
	if grossLoss == 0 {
		snap.ProfitFactor = Ratio(Infinite())
	} else {
		snap.ProfitFactor = Ratio(round2(grossProfit / grossLoss))
	}

	if snap.WinningTrades > 0 {
		snap.AverageWin = round2(sumWins / float64(snap.WinningTrades))
	}
	if snap.LosingTrades > 0 {
		snap.AverageLoss = round2(sumLosses / float64(snap.LosingTrades))
	}
	snap.AverageTrade = round2(mean(profits))
	if len(rrs) > 0 {
		snap.AverageRR = round2(mean(rrs))
		snap.MedianRR = round2(median(rrs))
	}

	snap.LargestWin = round2(largestWin)
	snap.LargestLoss = round2(largestLoss)

	// Best/worst trade percent is measured against the first trade's
	// recorded account balance, not each trade's own balance. Flagged for
	// product-owner review; preserved until they rule on it.
	if base := closed[0].Balance; base > 0 {
		snap.BestTradePct = round2(largestWin / base * 100)
		snap.WorstTradePct = round2(largestLoss / base * 100)
	}

	snap.MaxConsecutiveWins, snap.MaxConsecutiveLosses = Streaks(profits)
	snap.SharpeRatio = SharpeRatio(profits, DefaultRiskFreeRate)
	snap.RecoveryFactor = Ratio(RecoveryFactor(profits))

	winRate := float64(snap.WinningTrades) / float64(snap.TotalTrades)
	avgWin, avgLoss := rawAverage(sumWins, snap.WinningTrades), rawAverage(sumLosses, snap.LosingTrades)
	snap.Expectancy = Expectancy(winRate, avgWin, avgLoss)
	snap.KellyCriterion = KellyCriterion(winRate, avgWin, avgLoss)

	snap.AveragePositionSize = round2(totalVolume / float64(snap.TotalTrades))
	snap.TotalVolume = round2(totalVolume)
	snap.AverageRiskPerTrade = round2(totalRisk / float64(snap.TotalTrades))

	snap.BestSymbol, snap.WorstSymbol = bestWorstSymbol(symbolProfit)
	snap.SymbolsTraded = len(symbolProfit)

	return snap
}

func closedTrades(trades []*domain.Trade) []*domain.Trade {
	closed := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t != nil && t.IsClosed() {
			closed = append(closed, t)
		}
	}
	return closed
}

// rawAverage is an unrounded mean of a pre-summed group; expectancy and
// Kelly need the full-precision averages, rounding happens on their output.
func rawAverage(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// bestWorstSymbol ranks symbols by summed profit. Ties resolve to the
// lexicographically smallest symbol so repeated calls return identical
// snapshots.
func bestWorstSymbol(symbolProfit map[string]float64) (best, worst string) {
	if len(symbolProfit) == 0 {
		return "N/A", "N/A"
	}

	symbols := make([]string, 0, len(symbolProfit))
	for s := range symbolProfit {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	bestProfit, worstProfit := math.Inf(-1), math.Inf(1)
	for _, s := range symbols {
		p := symbolProfit[s]
		if p > bestProfit {
			bestProfit, best = p, s
		}
		if p < worstProfit {
			worstProfit, worst = p, s
		}
	}
	return best, worst
}
