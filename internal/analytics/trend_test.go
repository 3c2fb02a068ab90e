package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradeJournal/internal/domain"
)

func tradesFromProfits(profits ...float64) []*domain.Trade {
	trades := make([]*domain.Trade, len(profits))
	for i, p := range profits {
		trades[i] = closedTrade("EURUSD", p)
	}
	return trades
}

func TestCalculateTrend_Empty(t *testing.T) {
	m := CalculateTrend(nil)

	assert.Zero(t, m.EquityTrend)
	assert.Zero(t, m.TrendStrength)
	assert.Equal(t, TrendWeak, m.Trend)
	assert.Equal(t, DirectionSideways, m.Direction)
	assert.Zero(t, m.ConsistencyScore)
	assert.Zero(t, m.CurrentStreak)
	assert.Equal(t, 50.0, m.MomentumScore)
}

func TestCalculateTrend_EquityTrend(t *testing.T) {
	// Curve 100 -> 180: +80%.
	m := CalculateTrend(tradesFromProfits(100, 50, 30))
	assert.Equal(t, 80.0, m.EquityTrend)
	assert.Equal(t, DirectionUp, m.Direction)

	// Single point: no trend.
	single := CalculateTrend(tradesFromProfits(100))
	assert.Zero(t, single.EquityTrend)
}

func TestCalculateTrend_Direction(t *testing.T) {
	up := CalculateTrend(tradesFromProfits(10, 10, 10, 10))
	assert.Equal(t, DirectionUp, up.Direction)

	down := CalculateTrend(tradesFromProfits(-10, -10, -10, -10))
	assert.Equal(t, DirectionDown, down.Direction)
}

func TestCalculateTrend_Consistency(t *testing.T) {
	m := CalculateTrend(tradesFromProfits(10, -5, 10, -5))
	assert.Equal(t, 50.0, m.ConsistencyScore)

	allWins := CalculateTrend(tradesFromProfits(1, 2, 3))
	assert.Equal(t, 100.0, allWins.ConsistencyScore)
}

func TestCalculateTrend_CurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		profits []float64
		want    int
	}{
		{"winning run", []float64{-5, 10, 20, 30}, 3},
		{"losing run", []float64{10, 20, -5, -5}, -2},
		{"break even ends the run", []float64{10, 10, 0}, 0},
		{"single win", []float64{10}, 1},
		{"whole history one run", []float64{1, 2, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CalculateTrend(tradesFromProfits(tt.profits...))
			assert.Equal(t, tt.want, m.CurrentStreak)
		})
	}
}

func TestCalculateTrend_Momentum(t *testing.T) {
	t.Run("defaults to neutral under six trades", func(t *testing.T) {
		m := CalculateTrend(tradesFromProfits(10, 20, 30, 40, 50))
		assert.Equal(t, 50.0, m.MomentumScore)
	})

	t.Run("accelerating results clamp to 100", func(t *testing.T) {
		m := CalculateTrend(tradesFromProfits(0.1, 50, 50, 50, 50, 50))
		assert.Equal(t, 100.0, m.MomentumScore)
	})

	t.Run("collapsing results clamp to 0", func(t *testing.T) {
		m := CalculateTrend(tradesFromProfits(20, -5, -5, -5, -5, -5))
		assert.Equal(t, 0.0, m.MomentumScore)
	})

	t.Run("flat history stays neutral", func(t *testing.T) {
		m := CalculateTrend(tradesFromProfits(7, 7, 7, 7, 7, 7))
		assert.Equal(t, 50.0, m.MomentumScore)
	})
}

func TestRegressionSlope(t *testing.T) {
	assert.Equal(t, 10.0, regressionSlope([]float64{0, 10, 20, 30}))
	assert.Equal(t, 0.0, regressionSlope([]float64{5, 5, 5, 5}))
	assert.Equal(t, -3.0, regressionSlope([]float64{9, 6, 3, 0}))
	assert.Zero(t, regressionSlope([]float64{1}))
}

func TestCalculateTrend_StrengthClassification(t *testing.T) {
	// A straight rising line has slope 10 and curve stddev ~12.9: strength
	// well under 2, classified Weak.
	m := CalculateTrend(tradesFromProfits(10, 10, 10, 10))
	assert.Equal(t, TrendWeak, m.Trend)
	assert.Positive(t, m.TrendStrength)
}
