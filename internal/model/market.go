package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Opposite returns the side that closes exposure opened on s.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
	OrderTypeStop   OrderType = "stop"
)

type OrderStatus string

const (
	OrderStatusFilled  OrderStatus = "filled"
	OrderStatusPending OrderStatus = "pending"
)

// PricePoint is a single point of the simulated price series. Immutable once
// emitted; the series is a sliding window sized by the active timeframe.
type PricePoint struct {
	Time   time.Time       `json:"time"`
	Price  decimal.Decimal `json:"price"`
	Volume decimal.Decimal `json:"volume"`
}

// Trade is one synthetic execution on the trade tape.
type Trade struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Total  decimal.Decimal `json:"total"`
	Side   Side            `json:"side"`
	Time   time.Time       `json:"time"`
}

// BookLevel is one synthetic bid or ask. Ladders are regenerated wholesale on
// every price tick, never patched incrementally.
type BookLevel struct {
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Total  decimal.Decimal `json:"total"`
}

// OrderBook holds the derived bid/ask ladders around the current price.
type OrderBook struct {
	Asks []BookLevel `json:"asks"`
	Bids []BookLevel `json:"bids"`
}

// Candle is an OHLCV aggregate of the emitted price series.
type Candle struct {
	Symbol    string          `json:"symbol"`
	Period    string          `json:"period"`
	Open      decimal.Decimal `json:"o"`
	High      decimal.Decimal `json:"h"`
	Low       decimal.Decimal `json:"l"`
	Close     decimal.Decimal `json:"c"`
	Volume    decimal.Decimal `json:"v"`
	Timestamp time.Time       `json:"t"`
}
