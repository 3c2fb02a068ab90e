// Package app wires the trade journal together: ingestion (manual entry,
// CSV import), the trade lifecycle, and period-scoped analytics queries.
// The analytics package itself is pure; this service owns the I/O around it
// and the degrade-to-empty boundary for unexpected computation failures.
package app

import (
	"context"
	"fmt"
	"time"

	"tradeJournal/internal/analytics"
	"tradeJournal/internal/domain"
	"tradeJournal/internal/id"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/utils"
)

// JournalService orchestrates the trading journal operations.
type JournalService struct {
	logger ports.Logger
	repo   ports.TradeRepository
	now    func() time.Time // injectable clock for period windows
}

// NewJournalService creates a new application service instance.
func NewJournalService(logger ports.Logger, repo ports.TradeRepository) (*JournalService, error) {
	if logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for JournalService")
	}
	return &JournalService{
		logger: logger,
		repo:   repo,
		now:    time.Now,
	}, nil
}

// AddTrade validates a trade, assigns its internal id and persists it.
// Historical imports may arrive already CLOSED; manual entries are OPEN.
func (s *JournalService) AddTrade(ctx context.Context, trade *domain.Trade) error {
	if trade == nil {
		return fmt.Errorf("trade is required")
	}
	if err := trade.Validate(); err != nil {
		return err
	}
	if trade.ID == "" {
		trade.ID = id.New()
	}

	existing, err := s.repo.FindByTicket(ctx, trade.Ticket)
	if err != nil {
		return fmt.Errorf("failed to check for existing ticket %d: %w", trade.Ticket, err)
	}
	if existing != nil {
		return fmt.Errorf("ticket %d already journaled", trade.Ticket)
	}

	if err := s.repo.Create(ctx, trade); err != nil {
		return err
	}
	s.logger.Info(ctx, "Trade journaled", map[string]interface{}{
		"ticket": trade.Ticket,
		"symbol": trade.Symbol,
		"status": string(trade.Status),
	})
	return nil
}

// CloseTrade transitions an OPEN trade to CLOSED and persists the result.
func (s *JournalService) CloseTrade(ctx context.Context, ticket int64, exitPrice float64, exitTime time.Time, profit float64) (*domain.Trade, error) {
	trade, err := s.repo.FindByTicket(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket %d: %w", ticket, err)
	}
	if trade == nil {
		return nil, fmt.Errorf("ticket %d not found", ticket)
	}

	if err := trade.Close(exitPrice, exitTime, profit); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "Trade closed", map[string]interface{}{
		"ticket": ticket,
		"profit": profit,
	})
	return trade, nil
}

// ImportCSV ingests a terminal CSV export, skipping rows that fail to parse
// and tickets that are already journaled. Returns the number of imported
// trades.
func (s *JournalService) ImportCSV(ctx context.Context, filename string) (int, error) {
	trades, skipped, err := utils.ReadTradesFromCSV(filename)
	if err != nil {
		return 0, err
	}
	if skipped > 0 {
		s.logger.Warn(ctx, "Skipped malformed CSV rows", map[string]interface{}{
			"file":    filename,
			"skipped": skipped,
		})
	}

	imported := 0
	for _, trade := range trades {
		if err := s.AddTrade(ctx, trade); err != nil {
			s.logger.Warn(ctx, "Skipping trade during import", map[string]interface{}{
				"ticket": trade.Ticket,
				"reason": err.Error(),
			})
			continue
		}
		imported++
	}

	s.logger.Info(ctx, "CSV import finished", map[string]interface{}{
		"file":     filename,
		"imported": imported,
	})
	return imported, nil
}

// StatisticsFor computes the statistics snapshot for a reporting period.
// Repository failures surface as errors; computation failures degrade to the
// empty snapshot and are logged, never propagated.
func (s *JournalService) StatisticsFor(ctx context.Context, period Period) (analytics.Snapshot, error) {
	trades, err := s.closedTradesFor(ctx, period)
	if err != nil {
		return analytics.EmptyStatistics(period.Label()), err
	}
	return s.safeStatistics(ctx, trades, period.Label()), nil
}

// RiskFor computes the risk profile for a reporting period.
func (s *JournalService) RiskFor(ctx context.Context, period Period) (analytics.RiskMetrics, error) {
	trades, err := s.closedTradesFor(ctx, period)
	if err != nil {
		return analytics.RiskMetrics{RiskLevel: analytics.RiskUnknown}, err
	}
	return s.safeRisk(ctx, trades), nil
}

// TrendFor computes the trend profile for a reporting period.
func (s *JournalService) TrendFor(ctx context.Context, period Period) (analytics.TrendMetrics, error) {
	trades, err := s.closedTradesFor(ctx, period)
	if err != nil {
		return analytics.TrendMetrics{}, err
	}
	return s.safeTrend(ctx, trades), nil
}

// SymbolBreakdown groups and ranks the full journal by instrument.
func (s *JournalService) SymbolBreakdown(ctx context.Context) ([]analytics.SymbolStat, error) {
	trades, err := s.repo.FindClosed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load closed trades: %w", err)
	}
	return analytics.BreakdownBySymbol(trades), nil
}

// StrategyBreakdown groups and ranks the full journal by strategy tag.
func (s *JournalService) StrategyBreakdown(ctx context.Context) ([]analytics.StrategyStat, error) {
	trades, err := s.repo.FindClosed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load closed trades: %w", err)
	}
	return analytics.BreakdownByStrategy(trades), nil
}

// OpenTrades lists the currently open positions.
func (s *JournalService) OpenTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.repo.FindOpen(ctx)
}

func (s *JournalService) closedTradesFor(ctx context.Context, period Period) ([]*domain.Trade, error) {
	start, end, bounded := period.Range(s.now())
	if !bounded {
		trades, err := s.repo.FindClosed(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load closed trades: %w", err)
		}
		return trades, nil
	}

	trades, err := s.repo.FindClosedBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load closed trades for %s: %w", period.Label(), err)
	}
	return trades, nil
}

// safeStatistics shields callers from computation panics: the cause is
// logged and the documented empty snapshot returned instead.
func (s *JournalService) safeStatistics(ctx context.Context, trades []*domain.Trade, label string) (snap analytics.Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, fmt.Errorf("%v", r), "Statistics computation failed", map[string]interface{}{"period": label})
			snap = analytics.EmptyStatistics(label)
		}
	}()
	return analytics.GenerateStatistics(trades, label)
}

func (s *JournalService) safeRisk(ctx context.Context, trades []*domain.Trade) (m analytics.RiskMetrics) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, fmt.Errorf("%v", r), "Risk computation failed")
			m = analytics.RiskMetrics{RiskLevel: analytics.RiskUnknown}
		}
	}()
	return analytics.CalculateRisk(trades)
}

func (s *JournalService) safeTrend(ctx context.Context, trades []*domain.Trade) (m analytics.TrendMetrics) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, fmt.Errorf("%v", r), "Trend computation failed")
			m = analytics.TrendMetrics{}
		}
	}()
	return analytics.CalculateTrend(trades)
}
