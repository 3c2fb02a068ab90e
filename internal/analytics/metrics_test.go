package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

func TestRiskReward(t *testing.T) {
	tests := []struct {
		name      string
		entry     float64
		exit      float64
		stopLoss  float64
		direction domain.Direction
		want      float64
		wantOK    bool
	}{
		{
			name:  "buy trade",
			entry: 100, exit: 120, stopLoss: 90, direction: domain.Buy,
			want: 2.0, wantOK: true,
		},
		{
			name:  "sell trade",
			entry: 100, exit: 80, stopLoss: 110, direction: domain.Sell,
			want: 2.0, wantOK: true,
		},
		{
			name:  "buy limit counts as buy side",
			entry: 100, exit: 110, stopLoss: 95, direction: domain.BuyLimit,
			want: 2.0, wantOK: true,
		},
		{
			name:  "losing buy has negative ratio",
			entry: 100, exit: 95, stopLoss: 90, direction: domain.Buy,
			want: -0.5, wantOK: true,
		},
		{
			name:  "rounded to 3 decimals",
			entry: 100, exit: 110, stopLoss: 97, direction: domain.Buy,
			want: 3.333, wantOK: true,
		},
		{
			name:  "no stop loss is undefined",
			entry: 100, exit: 120, stopLoss: 0, direction: domain.Buy,
			wantOK: false,
		},
		{
			name:  "zero entry is undefined",
			entry: 0, exit: 120, stopLoss: 90, direction: domain.Buy,
			wantOK: false,
		},
		{
			name:  "stop at entry is undefined",
			entry: 100, exit: 120, stopLoss: 100, direction: domain.Buy,
			wantOK: false,
		},
		{
			name:  "unknown direction is undefined",
			entry: 100, exit: 120, stopLoss: 90, direction: "LONG",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RiskReward(tt.entry, tt.exit, tt.stopLoss, tt.direction)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTradeDuration(t *testing.T) {
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		exit time.Time
		want string
	}{
		{"open trade", time.Time{}, "Active"},
		{"seconds only", entry.Add(45 * time.Second), "45s"},
		{"minutes and seconds", entry.Add(5*time.Minute + 30*time.Second), "5m 30s"},
		{"hours and minutes", entry.Add(3*time.Hour + 15*time.Minute), "3h 15m"},
		{"days and hours", entry.Add(49 * time.Hour), "2d 1h"},
		{"exit before entry", entry.Add(-time.Minute), "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TradeDuration(entry, tt.exit))
		})
	}

	t.Run("zero entry with exit set", func(t *testing.T) {
		assert.Equal(t, "N/A", TradeDuration(time.Time{}, entry))
	})
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name  string
		curve []float64
		want  float64
	}{
		{"empty", nil, 0},
		{"monotonically rising", []float64{100, 150, 200, 260}, 0},
		{"single dip", []float64{100, 80, 120}, 20},
		{"deepest of several dips", []float64{100, 90, 110, 55, 120}, 50},
		{"rounded to 2 decimals", []float64{300, 200}, 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxDrawdown(tt.curve))
		})
	}
}

// Drawdown monotonicity: the maximum is at least any single-point drawdown.
func TestMaxDrawdown_DominatesPointwise(t *testing.T) {
	curve := []float64{100, 140, 90, 130, 70, 200, 150}

	max := MaxDrawdown(curve)
	peak := curve[0]
	for _, v := range curve {
		if v > peak {
			peak = v
		}
		point := (peak - v) / peak * 100
		assert.GreaterOrEqual(t, max+0.005, point) // +0.005 absorbs output rounding
	}
}

// The Sharpe ratio annualizes by sqrt(252): the engine treats each trade as
// one trading day, so multiple trades per day overstate the ratio.
func TestSharpeRatio(t *testing.T) {
	t.Run("fewer than two points", func(t *testing.T) {
		assert.Zero(t, SharpeRatio(nil, DefaultRiskFreeRate))
		assert.Zero(t, SharpeRatio([]float64{0.5}, DefaultRiskFreeRate))
	})

	t.Run("zero stddev guards division", func(t *testing.T) {
		assert.Zero(t, SharpeRatio([]float64{0.1, 0.1, 0.1}, DefaultRiskFreeRate))
	})

	t.Run("known value", func(t *testing.T) {
		// excess = [0.1, 0.2] - 0.02/252; mean/stddev * sqrt(252)
		got := SharpeRatio([]float64{0.1, 0.2}, 0.02)
		assert.InDelta(t, 33.66, got, 0.01)
	})

	t.Run("losing sequence is negative", func(t *testing.T) {
		assert.Negative(t, SharpeRatio([]float64{-0.1, -0.3, -0.2}, DefaultRiskFreeRate))
	})
}

func TestRecoveryFactor(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, RecoveryFactor(nil))
	})

	t.Run("no drawdown and positive profit is infinite", func(t *testing.T) {
		assert.True(t, IsInfinite(RecoveryFactor([]float64{10, 20, 5})))
	})

	t.Run("net over max drawdown", func(t *testing.T) {
		// cum: 100, 50, 80 -> max drawdown 50, net 80
		assert.Equal(t, 1.6, RecoveryFactor([]float64{100, -50, 30}))
	})

	t.Run("all losing", func(t *testing.T) {
		// cum: -10, -30 -> max drawdown 30, net -30
		assert.Equal(t, -1.0, RecoveryFactor([]float64{-10, -20}))
	})
}

func TestExpectancy(t *testing.T) {
	assert.Equal(t, 26.67, Expectancy(2.0/3.0, 65, -50))
	assert.Equal(t, 0.0, Expectancy(0.5, 10, -10))
	assert.Equal(t, -5.0, Expectancy(0, 0, -5))
}

func TestKellyCriterion(t *testing.T) {
	tests := []struct {
		name    string
		winRate float64
		avgWin  float64
		avgLoss float64
		want    float64
	}{
		{"positive edge", 0.6, 100, -50, 40},
		{"floored at zero", 0.3, 50, -100, 0},
		{"zero average loss", 0.6, 100, 0, 0},
		{"zero average win", 0.6, 0, -50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KellyCriterion(tt.winRate, tt.avgWin, tt.avgLoss))
		})
	}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name       string
		profits    []float64
		wantWins   int
		wantLosses int
	}{
		{"empty", nil, 0, 0},
		{"documented example", []float64{10, 20, -5, -5, -5, 30}, 2, 3},
		{"all wins", []float64{1, 2, 3}, 3, 0},
		{"break even resets both", []float64{10, 10, 0, 10, -5}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wins, losses := Streaks(tt.profits)
			assert.Equal(t, tt.wantWins, wins)
			assert.Equal(t, tt.wantLosses, losses)
		})
	}
}

func TestAccountChange(t *testing.T) {
	assert.Equal(t, 5.0, AccountChange(10000, 10500))
	assert.Equal(t, -2.5, AccountChange(10000, 9750))
	assert.Zero(t, AccountChange(0, 10500))
}

func TestPercentile(t *testing.T) {
	profits := []float64{-10, -5, 0, 5, 10}
	assert.Equal(t, -9.0, percentile(profits, 5))
	assert.Equal(t, 0.0, percentile(profits, 50))
	assert.Equal(t, 10.0, percentile(profits, 100))
	assert.Zero(t, percentile(nil, 5))
	assert.Equal(t, 7.0, percentile([]float64{7}, 5))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
	assert.Zero(t, median(nil))
}
