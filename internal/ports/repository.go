package ports

import (
	"context"
	"time"

	"tradeJournal/internal/domain"
)

// TradeRepository defines the interface for storing and retrieving journal
// trades. The analytics engine never touches this directly; the application
// service materializes a trade collection and hands it over.
type TradeRepository interface {
	// Create saves a new trade record.
	Create(ctx context.Context, trade *domain.Trade) error
	// Update modifies an existing trade (e.g. an OPEN -> CLOSED transition).
	Update(ctx context.Context, trade *domain.Trade) error
	// FindByTicket retrieves a trade by its terminal ticket number.
	// Returns nil, nil if not found.
	FindByTicket(ctx context.Context, ticket int64) (*domain.Trade, error)
	// FindAll retrieves all trades ordered by entry time ascending.
	FindAll(ctx context.Context) ([]*domain.Trade, error)
	// FindClosed retrieves all CLOSED trades ordered by exit time ascending.
	FindClosed(ctx context.Context) ([]*domain.Trade, error)
	// FindClosedBetween retrieves CLOSED trades whose exit time falls in
	// [start, end), ordered by exit time ascending.
	FindClosedBetween(ctx context.Context, start, end time.Time) ([]*domain.Trade, error)
	// FindOpen retrieves all OPEN trades ordered by entry time ascending.
	FindOpen(ctx context.Context) ([]*domain.Trade, error)
	// DistinctSymbols lists the symbols present in the journal.
	DistinctSymbols(ctx context.Context) ([]string, error)
}
