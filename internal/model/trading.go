package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AllowedLeverage is the discrete set of leverage multipliers the trading
// form offers.
var AllowedLeverage = []int{1, 2, 3, 5, 10, 20, 50, 100}

func LeverageAllowed(lev int) bool {
	for _, l := range AllowedLeverage {
		if l == lev {
			return true
		}
	}
	return false
}

// OrderRequest is an inbound order intent from the view layer.
type OrderRequest struct {
	Type       OrderType       `json:"type" binding:"required,oneof=market limit stop"`
	Side       Side            `json:"side" binding:"required,oneof=buy sell"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Leverage   int             `json:"leverage" binding:"required"`
	ReduceOnly bool            `json:"reduceOnly"`
	PostOnly   bool            `json:"postOnly"`
}

// Order is a history record of a submitted order. Immutable after creation.
type Order struct {
	ID         string          `json:"id"`
	Type       OrderType       `json:"type"`
	Side       Side            `json:"side"`
	Price      decimal.Decimal `json:"price"`
	Amount     decimal.Decimal `json:"amount"`
	Leverage   int             `json:"leverage"`
	Total      decimal.Decimal `json:"total"`
	ReduceOnly bool            `json:"reduceOnly"`
	PostOnly   bool            `json:"postOnly"`
	Timestamp  time.Time       `json:"timestamp"`
	Status     OrderStatus     `json:"status"`

	// Set only on closing orders.
	PnL           *decimal.Decimal `json:"pnl,omitempty"`
	PnLPercentage *decimal.Decimal `json:"pnlPercentage,omitempty"`
}

// Position is an open leveraged position. Removed from the open set when
// closed; closing always covers the full remaining amount.
type Position struct {
	ID               string          `json:"id"`
	Symbol           string          `json:"symbol"`
	Side             Side            `json:"side"`
	Amount           decimal.Decimal `json:"amount"`
	EntryPrice       decimal.Decimal `json:"entryPrice"`
	Leverage         int             `json:"leverage"`
	LiquidationPrice decimal.Decimal `json:"liquidationPrice"`
	Timestamp        time.Time       `json:"timestamp"`
}

// PositionView is a position marked to the current price.
type PositionView struct {
	Position
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	PnL           decimal.Decimal `json:"pnl"`
	PnLPercentage decimal.Decimal `json:"pnlPercentage"`
}

// PnLRecord books the realized result of a closed position. Created exactly
// once per close, append-only, never mutated.
type PnLRecord struct {
	ID            string          `json:"id"`
	PositionID    string          `json:"positionId"`
	EntryPrice    decimal.Decimal `json:"entryPrice"`
	ExitPrice     decimal.Decimal `json:"exitPrice"`
	Amount        decimal.Decimal `json:"amount"`
	Leverage      int             `json:"leverage"`
	PnL           decimal.Decimal `json:"pnl"`
	PnLPercentage decimal.Decimal `json:"pnlPercentage"`
	Timestamp     time.Time       `json:"timestamp"`
}

// ClosedPosition is the result of closing a position: the synthetic closing
// order plus the booked PnL record.
type ClosedPosition struct {
	ClosingOrder Order     `json:"closingOrder"`
	PnLRecord    PnLRecord `json:"pnlRecord"`
}
