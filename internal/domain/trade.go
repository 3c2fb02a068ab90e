package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotOpen is returned when closing a trade that is not OPEN.
	ErrNotOpen = errors.New("trade is not open")
	// ErrInvalidTrade is returned when a trade fails basic validation.
	ErrInvalidTrade = errors.New("invalid trade")
)

// Trade represents one position taken in a tradable instrument, open or
// closed. Prices of zero mean "not set" (e.g. no stop-loss attached).
type Trade struct {
	ID     string // Internal identifier (ULID), assigned at ingestion
	Ticket int64  // Ticket/order identifier from the trading terminal

	Symbol    string    // Instrument symbol (e.g. "EURUSD")
	Direction Direction // Order direction (BUY, SELL, ...)
	Volume    float64   // Lot size, positive

	EntryPrice   float64 // Price at which the position was entered
	CurrentPrice float64 // Last known price while the trade is open
	ExitPrice    float64 // Price at which the position was exited (0 if open)
	StopLoss     float64 // Stop-loss price level (0 if not set)
	TakeProfit   float64 // Take-profit price level (0 if not set)

	Profit      float64 // Realized profit once closed
	FloatingPNL float64 // Unrealized profit while the trade is open
	Commission  float64 // Broker commission, normally <= 0
	Swap        float64 // Overnight swap, either sign

	EntryTime time.Time // Timestamp when the position was entered
	ExitTime  time.Time // Timestamp when the position was exited (zero if open)

	Balance      float64 // Account balance recorded at the time of the trade
	Equity       float64 // Account equity recorded at the time of the trade
	RiskPerTrade float64 // Percent of account risked on this trade (0 if unknown)

	Strategy string   // Free-text strategy tag ("" if untagged)
	Tags     []string // Arbitrary user tags

	Status TradeStatus
}

// Validate checks the structural invariants of a trade record.
func (t *Trade) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: symbol is required", ErrInvalidTrade)
	}
	if !t.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidTrade, t.Direction)
	}
	if t.Volume <= 0 {
		return fmt.Errorf("%w: volume must be positive", ErrInvalidTrade)
	}
	if t.EntryTime.IsZero() {
		return fmt.Errorf("%w: entry time is required", ErrInvalidTrade)
	}
	if t.Status == StatusClosed {
		if t.ExitPrice == 0 {
			return fmt.Errorf("%w: closed trade requires exit price", ErrInvalidTrade)
		}
		if t.ExitTime.IsZero() {
			return fmt.Errorf("%w: closed trade requires exit time", ErrInvalidTrade)
		}
	}
	return nil
}

// Close transitions an OPEN trade to CLOSED, recording the exit price, exit
// time and realized profit. Floating PnL is cleared on close.
func (t *Trade) Close(exitPrice float64, exitTime time.Time, profit float64) error {
	if t.Status != StatusOpen {
		return fmt.Errorf("%w: status is %s", ErrNotOpen, t.Status)
	}
	if exitPrice <= 0 {
		return fmt.Errorf("%w: exit price must be positive", ErrInvalidTrade)
	}
	if exitTime.Before(t.EntryTime) {
		return fmt.Errorf("%w: exit time precedes entry time", ErrInvalidTrade)
	}
	t.ExitPrice = exitPrice
	t.ExitTime = exitTime
	t.Profit = profit
	t.FloatingPNL = 0
	t.Status = StatusClosed
	return nil
}

// IsClosed reports whether the trade has been closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsWin reports whether a closed trade realized a positive profit.
func (t *Trade) IsWin() bool {
	return t.IsClosed() && t.Profit > 0
}
