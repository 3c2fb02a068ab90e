package analytics

import (
	"math"

	"tradeJournal/internal/domain"
)

// Trend strength classifications.
const (
	TrendStrong   = "Strong"
	TrendModerate = "Moderate"
	TrendWeak     = "Weak"
)

// Trend directions, from the sign of the fitted slope.
const (
	DirectionUp       = "Up"
	DirectionDown     = "Down"
	DirectionSideways = "Sideways"
)

// momentumWindow is the number of recent trades compared against the rest of
// the history for the momentum score.
const momentumWindow = 5

// TrendMetrics describes the directionality and momentum of the cumulative
// equity curve indexed by trade sequence.
type TrendMetrics struct {
	EquityTrend      float64 `json:"equity_trend"`      // percent change first point to last
	TrendStrength    float64 `json:"trend_strength"`    // |regression slope| / curve stddev
	Trend            string  `json:"trend"`             // Strong / Moderate / Weak
	Direction        string  `json:"direction"`         // Up / Down / Sideways
	ConsistencyScore float64 `json:"consistency_score"` // percent of winning trades
	CurrentStreak    int     `json:"current_streak"`    // signed: wins positive, losses negative
	MomentumScore    float64 `json:"momentum_score"`    // 0-100, 50 is neutral
}

// CalculateTrend scores the trend of a trade history. Fewer than 2 closed
// trades yields the neutral result (all zeros, momentum 50, Weak/Sideways).
func CalculateTrend(trades []*domain.Trade) TrendMetrics {
	profits := closedProfits(trades)

	m := TrendMetrics{
		Trend:         TrendWeak,
		Direction:     DirectionSideways,
		MomentumScore: 50,
	}
	if len(profits) == 0 {
		return m
	}

	curve := equityCurve(profits)

	if len(curve) >= 2 && curve[0] != 0 {
		m.EquityTrend = round2((curve[len(curve)-1] - curve[0]) / math.Abs(curve[0]) * 100)
	}

	slope := regressionSlope(curve)
	strength := math.Abs(slope) / (stdDev(curve) + epsilon)
	m.TrendStrength = round2(strength)
	switch {
	case strength > 5:
		m.Trend = TrendStrong
	case strength > 2:
		m.Trend = TrendModerate
	}
	switch {
	case slope > epsilon:
		m.Direction = DirectionUp
	case slope < -epsilon:
		m.Direction = DirectionDown
	}

	var wins int
	for _, p := range profits {
		if p > 0 {
			wins++
		}
	}
	m.ConsistencyScore = round2(float64(wins) / float64(len(profits)) * 100)

	m.CurrentStreak = currentStreak(profits)
	m.MomentumScore = momentumScore(profits)
	return m
}

// regressionSlope fits a least-squares line to the curve indexed 0..n-1 and
// returns its slope. Fewer than 2 points yields 0.
func regressionSlope(curve []float64) float64 {
	n := len(curve)
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range curve {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// currentStreak scans backward from the most recent trade counting the run
// of same-sign outcomes: positive for wins, negative for losses. A
// break-even trade ends the run immediately.
func currentStreak(profits []float64) int {
	if len(profits) == 0 {
		return 0
	}

	last := profits[len(profits)-1]
	if last == 0 {
		return 0
	}

	streak := 0
	for i := len(profits) - 1; i >= 0; i-- {
		if (last > 0) != (profits[i] > 0) || profits[i] == 0 {
			break
		}
		streak++
	}
	if last < 0 {
		return -streak
	}
	return streak
}

// momentumScore compares the mean of the most recent trades against the mean
// of everything before them, mapped onto 0-100 with 50 as neutral. Fewer
// than momentumWindow+1 trades defaults to 50.
func momentumScore(profits []float64) float64 {
	if len(profits) <= momentumWindow {
		return 50
	}

	recent := mean(profits[len(profits)-momentumWindow:])
	historical := mean(profits[:len(profits)-momentumWindow])

	score := 50 + 50*(recent-historical)/(math.Abs(historical)+epsilon)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}
