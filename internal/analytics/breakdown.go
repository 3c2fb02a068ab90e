package analytics

import (
	"sort"

	"tradeJournal/internal/domain"
)

// SymbolStat summarizes the closed trades of one instrument.
type SymbolStat struct {
	Symbol       string  `json:"symbol"`
	TotalTrades  int     `json:"total_trades"`
	WinRate      float64 `json:"win_rate"`
	NetProfit    float64 `json:"net_profit"`
	AverageTrade float64 `json:"average_trade"`
	BestTrade    float64 `json:"best_trade"`
	WorstTrade   float64 `json:"worst_trade"`
	TotalVolume  float64 `json:"total_volume"`
}

// StrategyStat summarizes the closed trades carrying one strategy tag.
type StrategyStat struct {
	Strategy     string  `json:"strategy"`
	TotalTrades  int     `json:"total_trades"`
	WinRate      float64 `json:"win_rate"`
	NetProfit    float64 `json:"net_profit"`
	AverageTrade float64 `json:"average_trade"`
	BestTrade    float64 `json:"best_trade"`
	WorstTrade   float64 `json:"worst_trade"`
	TotalVolume  float64 `json:"total_volume"`
	ProfitFactor Ratio   `json:"profit_factor"`
	AverageRR    float64 `json:"average_rr"`
}

// group accumulates the per-dimension aggregates shared by both breakdowns.
type group struct {
	trades      int
	wins        int
	net         float64
	grossProfit float64
	grossLoss   float64
	best        float64
	worst       float64
	volume      float64
	rrs         []float64
}

func (g *group) add(t *domain.Trade) {
	p := t.Profit
	if g.trades == 0 {
		g.best, g.worst = p, p
	} else {
		if p > g.best {
			g.best = p
		}
		if p < g.worst {
			g.worst = p
		}
	}
	g.trades++
	if p > 0 {
		g.wins++
		g.grossProfit += p
	} else if p < 0 {
		g.grossLoss += -p
	}
	g.net += p
	g.volume += t.Volume
	if rr, ok := RiskReward(t.EntryPrice, t.ExitPrice, t.StopLoss, t.Direction); ok {
		g.rrs = append(g.rrs, rr)
	}
}

func (g *group) winRate() float64 {
	return round2(float64(g.wins) / float64(g.trades) * 100)
}

func (g *group) profitFactor() Ratio {
	if g.grossLoss == 0 {
		return Ratio(Infinite())
	}
	return Ratio(round2(g.grossProfit / g.grossLoss))
}

// BreakdownBySymbol groups closed trades by instrument and ranks the groups
// by net profit, best first. Ties resolve alphabetically so results are
// stable across calls.
func BreakdownBySymbol(trades []*domain.Trade) []SymbolStat {
	groups := make(map[string]*group)
	for _, t := range closedTrades(trades) {
		g := groups[t.Symbol]
		if g == nil {
			g = &group{}
			groups[t.Symbol] = g
		}
		g.add(t)
	}

	stats := make([]SymbolStat, 0, len(groups))
	for symbol, g := range groups {
		stats = append(stats, SymbolStat{
			Symbol:       symbol,
			TotalTrades:  g.trades,
			WinRate:      g.winRate(),
			NetProfit:    round2(g.net),
			AverageTrade: round2(g.net / float64(g.trades)),
			BestTrade:    round2(g.best),
			WorstTrade:   round2(g.worst),
			TotalVolume:  round2(g.volume),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].NetProfit != stats[j].NetProfit {
			return stats[i].NetProfit > stats[j].NetProfit
		}
		return stats[i].Symbol < stats[j].Symbol
	})
	return stats
}

// BreakdownByStrategy groups closed trades by their strategy tag, skipping
// untagged trades. A collection with no tagged trades yields an empty list.
func BreakdownByStrategy(trades []*domain.Trade) []StrategyStat {
	groups := make(map[string]*group)
	for _, t := range closedTrades(trades) {
		if t.Strategy == "" {
			continue
		}
		g := groups[t.Strategy]
		if g == nil {
			g = &group{}
			groups[t.Strategy] = g
		}
		g.add(t)
	}

	stats := make([]StrategyStat, 0, len(groups))
	for strategy, g := range groups {
		s := StrategyStat{
			Strategy:     strategy,
			TotalTrades:  g.trades,
			WinRate:      g.winRate(),
			NetProfit:    round2(g.net),
			AverageTrade: round2(g.net / float64(g.trades)),
			BestTrade:    round2(g.best),
			WorstTrade:   round2(g.worst),
			TotalVolume:  round2(g.volume),
			ProfitFactor: g.profitFactor(),
		}
		if len(g.rrs) > 0 {
			s.AverageRR = round2(mean(g.rrs))
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].NetProfit != stats[j].NetProfit {
			return stats[i].NetProfit > stats[j].NetProfit
		}
		return stats[i].Strategy < stats[j].Strategy
	})
	return stats
}
