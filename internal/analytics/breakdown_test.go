package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/domain"
)

func TestBreakdownBySymbol(t *testing.T) {
	eur1 := closedTrade("EURUSD", 100)
	eur1.Volume = 0.5
	eur2 := closedTrade("EURUSD", -40)
	eur2.Volume = 1.5
	gbp := closedTrade("GBPUSD", 30)
	open := closedTrade("USDJPY", 0)
	open.Status = domain.StatusOpen

	stats := BreakdownBySymbol([]*domain.Trade{eur1, eur2, gbp, open})
	require.Len(t, stats, 2, "open trades are excluded")

	// Sorted by net profit descending.
	assert.Equal(t, "EURUSD", stats[0].Symbol)
	assert.Equal(t, 2, stats[0].TotalTrades)
	assert.Equal(t, 50.0, stats[0].WinRate)
	assert.Equal(t, 60.0, stats[0].NetProfit)
	assert.Equal(t, 30.0, stats[0].AverageTrade)
	assert.Equal(t, 100.0, stats[0].BestTrade)
	assert.Equal(t, -40.0, stats[0].WorstTrade)
	assert.Equal(t, 2.0, stats[0].TotalVolume)

	assert.Equal(t, "GBPUSD", stats[1].Symbol)
	assert.Equal(t, 30.0, stats[1].NetProfit)
	assert.Equal(t, 30.0, stats[1].BestTrade)
	assert.Equal(t, 30.0, stats[1].WorstTrade)
}

func TestBreakdownBySymbol_Empty(t *testing.T) {
	assert.Empty(t, BreakdownBySymbol(nil))
}

func TestBreakdownBySymbol_TiesAreStable(t *testing.T) {
	a := closedTrade("AUDUSD", 30)
	b := closedTrade("GBPUSD", 30)

	first := BreakdownBySymbol([]*domain.Trade{b, a})
	second := BreakdownBySymbol([]*domain.Trade{a, b})

	require.Len(t, first, 2)
	assert.Equal(t, "AUDUSD", first[0].Symbol, "ties resolve alphabetically")
	assert.Equal(t, first, second)
}

func TestBreakdownByStrategy(t *testing.T) {
	breakout1 := closedTrade("EURUSD", 120)
	breakout1.Strategy = "breakout"
	breakout1.EntryPrice = 100
	breakout1.ExitPrice = 120
	breakout1.StopLoss = 90 // RR 2.0

	breakout2 := closedTrade("GBPUSD", -60)
	breakout2.Strategy = "breakout"

	scalp := closedTrade("EURUSD", 10)
	scalp.Strategy = "scalp"

	untagged := closedTrade("EURUSD", 999)

	stats := BreakdownByStrategy([]*domain.Trade{breakout1, breakout2, scalp, untagged})
	require.Len(t, stats, 2, "untagged trades are excluded")

	assert.Equal(t, "breakout", stats[0].Strategy)
	assert.Equal(t, 2, stats[0].TotalTrades)
	assert.Equal(t, 50.0, stats[0].WinRate)
	assert.Equal(t, 60.0, stats[0].NetProfit)
	assert.Equal(t, Ratio(2.0), stats[0].ProfitFactor)
	assert.Equal(t, 2.0, stats[0].AverageRR, "only the trade with a stop contributes")

	assert.Equal(t, "scalp", stats[1].Strategy)
	assert.True(t, stats[1].ProfitFactor.IsInfinite(), "no losses in the scalp group")
	assert.Zero(t, stats[1].AverageRR)
}

func TestBreakdownByStrategy_NoTaggedTrades(t *testing.T) {
	stats := BreakdownByStrategy([]*domain.Trade{closedTrade("EURUSD", 10)})
	assert.Empty(t, stats)
}
