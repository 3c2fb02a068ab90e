package domain

// Direction represents the order direction of a trade as reported by the
// trading terminal (market orders plus pending order types).
type Direction string

const (
	Buy       Direction = "BUY"
	Sell      Direction = "SELL"
	BuyLimit  Direction = "BUY_LIMIT"
	SellLimit Direction = "SELL_LIMIT"
	BuyStop   Direction = "BUY_STOP"
	SellStop  Direction = "SELL_STOP"
)

// IsBuySide reports whether the direction belongs to the BUY family.
func (d Direction) IsBuySide() bool {
	return d == Buy || d == BuyLimit || d == BuyStop
}

// IsSellSide reports whether the direction belongs to the SELL family.
func (d Direction) IsSellSide() bool {
	return d == Sell || d == SellLimit || d == SellStop
}

// IsValid reports whether the direction is one of the known order types.
func (d Direction) IsValid() bool {
	return d.IsBuySide() || d.IsSellSide()
}

// TradeStatus represents the lifecycle state of a trade.
//
// Lifecycle: a trade is created OPEN (or CLOSED when imported from history),
// may transition OPEN -> CLOSED exactly once, and never leaves CLOSED or
// CANCELLED.
type TradeStatus string

const (
	StatusOpen      TradeStatus = "OPEN"
	StatusClosed    TradeStatus = "CLOSED"
	StatusPending   TradeStatus = "PENDING"
	StatusCancelled TradeStatus = "CANCELLED"
)
