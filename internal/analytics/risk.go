package analytics

import (
	"math"

	"tradeJournal/internal/domain"
)

// Risk classification levels, from least to most severe. RiskUnknown is
// only produced when the computation itself failed.
const (
	RiskLow      = "Low"
	RiskModerate = "Moderate"
	RiskHigh     = "High"
	RiskExtreme  = "Extreme"
	RiskUnknown  = "Unknown"
)

// RiskMetrics describes the risk profile of a trade history, derived from
// the cumulative profit curve and the raw profit distribution.
type RiskMetrics struct {
	MaxDrawdown       float64 `json:"max_drawdown"`       // percent decline from equity peak
	Volatility        float64 `json:"volatility"`         // stddev of equity curve percent changes
	SharpeRatio       float64 `json:"sharpe_ratio"`       // mean change / volatility
	ValueAtRisk95     float64 `json:"value_at_risk_95"`   // 5th percentile of trade profits
	ExpectedShortfall float64 `json:"expected_shortfall"` // mean profit below the VaR threshold
	RiskScore         float64 `json:"risk_score"`         // composite 0-100
	RiskLevel         string  `json:"risk_level"`
}

// CalculateRisk scores the risk of a trade history. An empty collection
// yields zeroed metrics classified Low (a zero score sits in the lowest
// tier); callers render that as insufficient data.
func CalculateRisk(trades []*domain.Trade) RiskMetrics {
	profits := closedProfits(trades)
	if len(profits) == 0 {
		return RiskMetrics{RiskLevel: RiskLow}
	}

	curve := equityCurve(profits)

	m := RiskMetrics{}
	m.MaxDrawdown = MaxDrawdown(curve)

	changes := percentChanges(curve)
	vol := stdDev(changes)
	m.Volatility = round2(vol)
	if vol > 0 {
		m.SharpeRatio = round2(mean(changes) / vol)
	}

	varThreshold := percentile(profits, 5)
	m.ValueAtRisk95 = round2(varThreshold)
	m.ExpectedShortfall = round2(expectedShortfall(profits, varThreshold))

	m.RiskScore = round2(riskScore(vol, m.MaxDrawdown, varThreshold))
	m.RiskLevel = classifyRisk(m.RiskScore)
	return m
}

// riskScore averages three sub-scores, each capped at 100: volatility x2,
// drawdown x3 and |VaR| x10.
func riskScore(volatility, maxDrawdown, valueAtRisk float64) float64 {
	volScore := math.Min(volatility*2, 100)
	ddScore := math.Min(maxDrawdown*3, 100)
	varScore := math.Min(math.Abs(valueAtRisk)*10, 100)
	return (volScore + ddScore + varScore) / 3
}

// classifyRisk maps a composite score to a level. Boundary values belong to
// the next tier: a score of exactly 25 is Moderate, not Low.
func classifyRisk(score float64) string {
	switch {
	case score < 25:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 75:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// expectedShortfall is the mean of profits strictly below the VaR threshold,
// falling back to the threshold itself when nothing falls below it.
func expectedShortfall(profits []float64, varThreshold float64) float64 {
	var sum float64
	var n int
	for _, p := range profits {
		if p < varThreshold {
			sum += p
			n++
		}
	}
	if n == 0 {
		return varThreshold
	}
	return sum / float64(n)
}

func closedProfits(trades []*domain.Trade) []float64 {
	profits := make([]float64, 0, len(trades))
	for _, t := range trades {
		if t != nil && t.IsClosed() {
			profits = append(profits, t.Profit)
		}
	}
	return profits
}

func equityCurve(profits []float64) []float64 {
	curve := make([]float64, len(profits))
	var cum float64
	for i, p := range profits {
		cum += p
		curve[i] = cum
	}
	return curve
}

// percentChanges returns the period-over-period percent change of a curve,
// skipping steps whose base is zero. The base is taken in absolute value so
// a recovery from negative equity still counts as a positive change.
func percentChanges(curve []float64) []float64 {
	changes := make([]float64, 0, len(curve))
	for i := 1; i < len(curve); i++ {
		base := curve[i-1]
		if base == 0 {
			continue
		}
		changes = append(changes, (curve[i]-base)/math.Abs(base)*100)
	}
	return changes
}
