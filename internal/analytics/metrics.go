// Package analytics contains the trading statistics and risk engine: pure,
// stateless computations that turn a collection of closed trades into the
// derived metrics shown on the dashboards. Every entry point takes its own
// view of the trade collection and returns a freshly built result, so
// concurrent calls need no locking.
//
// Expected numeric edge cases (empty input, zero denominators) resolve to
// documented sentinels rather than errors: ratios whose denominator is zero
// carry math.Inf(1), excluded ratios report ok=false, and all monetary and
// percentage outputs are rounded only at the boundary.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"tradeJournal/internal/domain"
)

// DefaultRiskFreeRate is the annual risk-free rate assumed by the Sharpe
// ratio when the caller has no better figure.
const DefaultRiskFreeRate = 0.02

// tradingDaysPerYear is the annualization base for the Sharpe ratio. The
// engine treats each trade as one daily data point; intraday traders with
// several trades per day will see an overstated ratio.
const tradingDaysPerYear = 252

const epsilon = 1e-9

// Infinite is the sentinel carried by ratios whose denominator is exactly
// zero (e.g. profit factor with no losing trades).
func Infinite() float64 { return math.Inf(1) }

// IsInfinite reports whether v is the Infinite sentinel.
func IsInfinite(v float64) bool { return math.IsInf(v, 1) }

// RiskReward computes the reward/risk ratio of a single trade from its entry,
// exit and stop-loss prices. The second return value is false when the ratio
// is undefined: no stop-loss, zero entry, stop at entry, or an unrecognized
// direction. Undefined ratios must be excluded from averages, not folded in
// as zero.
func RiskReward(entry, exit, stopLoss float64, direction domain.Direction) (float64, bool) {
	if stopLoss == 0 || entry == 0 || entry == stopLoss {
		return 0, false
	}

	var risk, reward float64
	switch {
	case direction.IsBuySide():
		risk = entry - stopLoss
		reward = exit - entry
	case direction.IsSellSide():
		risk = stopLoss - entry
		reward = entry - exit
	default:
		return 0, false
	}
	if risk == 0 {
		return 0, false
	}
	return round3(reward / risk), true
}

// TradeDuration formats the elapsed wall-clock time of a trade using the
// coarsest two units. An open trade (zero exit time) yields "Active";
// malformed timestamps yield "N/A".
func TradeDuration(entryTime, exitTime time.Time) string {
	if exitTime.IsZero() {
		return "Active"
	}
	if entryTime.IsZero() || exitTime.Before(entryTime) {
		return "N/A"
	}

	d := exitTime.Sub(entryTime)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		days := int(d.Hours()) / 24
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	}
}

// MaxDrawdown returns the largest peak-to-trough decline of an equity curve
// as a percent of the peak, rounded to 2 decimals. Empty input yields 0.
func MaxDrawdown(equityCurve []float64) float64 {
	if len(equityCurve) == 0 {
		return 0
	}

	var maxDD float64
	peak := equityCurve[0]
	for _, v := range equityCurve {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return round2(maxDD)
}

// SharpeRatio computes an annualized Sharpe-like ratio over per-trade
// returns. The risk-free rate is scaled to a daily equivalent (rate/252) and
// the ratio is annualized by sqrt(252), assuming one data point per trading
// day. Fewer than 2 points or a zero standard deviation yields 0.
func SharpeRatio(returns []float64, riskFreeRate float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	daily := riskFreeRate / tradingDaysPerYear
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - daily
	}

	sd := stdDev(excess)
	if sd == 0 {
		return 0
	}
	return round2(mean(excess) / sd * math.Sqrt(tradingDaysPerYear))
}

// RecoveryFactor divides net cumulative profit by the maximum absolute
// drawdown of the cumulative profit curve. A profitable sequence with no
// drawdown yields the Infinite sentinel; empty input yields 0.
func RecoveryFactor(profits []float64) float64 {
	if len(profits) == 0 {
		return 0
	}

	var net, cum, peak, maxDD float64
	for _, p := range profits {
		net += p
		cum += p
		if cum > peak {
			peak = cum
		}
		if dd := peak - cum; dd > maxDD {
			maxDD = dd
		}
	}

	if maxDD < epsilon {
		if net > 0 {
			return Infinite()
		}
		return 0
	}
	return round2(net / maxDD)
}

// Expectancy returns the probability-weighted average profit per trade.
// winRate is a fraction in [0,1]; avgLoss is expected to be negative or zero.
func Expectancy(winRate, avgWin, avgLoss float64) float64 {
	return round2(winRate*avgWin + (1-winRate)*avgLoss)
}

// KellyCriterion returns the Kelly-optimal percent of capital to risk per
// trade, floored at 0. A zero average loss yields 0.
func KellyCriterion(winRate, avgWin, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 0
	}
	payoff := math.Abs(avgWin / avgLoss)
	if payoff == 0 {
		return 0
	}
	kelly := winRate - (1-winRate)/payoff
	if kelly < 0 {
		return 0
	}
	return round2(kelly * 100)
}

// Streaks returns the maximum consecutive winning and losing runs in a
// profit sequence. Break-even trades reset both counters.
func Streaks(profits []float64) (maxWins, maxLosses int) {
	var wins, losses int
	for _, p := range profits {
		switch {
		case p > 0:
			wins++
			losses = 0
		case p < 0:
			losses++
			wins = 0
		default:
			wins, losses = 0, 0
		}
		if wins > maxWins {
			maxWins = wins
		}
		if losses > maxLosses {
			maxLosses = losses
		}
	}
	return maxWins, maxLosses
}

// AccountChange returns the percent change of equity relative to balance.
// A zero balance yields 0.
func AccountChange(balance, equity float64) float64 {
	if balance == 0 {
		return 0
	}
	return round2((equity - balance) / balance * 100)
}

// --- shared numeric helpers ---

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

// percentile returns the p-th percentile of values using linear
// interpolation between closest ranks.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return math.Round(v*1000) / 1000
}
