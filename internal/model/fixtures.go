package model

import "github.com/shopspring/decimal"

// Market is static listing data for the markets table. Fixture data injected
// into the view layer, not simulation state.
type Market struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change    decimal.Decimal `json:"change"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"marketCap"`
}

// Markets mirrors the listing set of the dashboard.
var Markets = []Market{
	{ID: 1, Name: "Bitcoin", Symbol: "BTC/USDT", Price: decimal.NewFromFloat(67890.45), Change: decimal.NewFromFloat(4.3), Volume: decimal.NewFromInt(12500000000), MarketCap: decimal.NewFromInt(1320000000000)},
	{ID: 2, Name: "Ethereum", Symbol: "ETH/USDT", Price: decimal.NewFromFloat(2476.11), Change: decimal.NewFromFloat(-2.5), Volume: decimal.NewFromInt(8500000000), MarketCap: decimal.NewFromInt(290000000000)},
	{ID: 3, Name: "Solana", Symbol: "SOL/USDT", Price: decimal.NewFromFloat(105.75), Change: decimal.NewFromFloat(8.2), Volume: decimal.NewFromInt(3200000000), MarketCap: decimal.NewFromInt(45000000000)},
	{ID: 4, Name: "Cardano", Symbol: "ADA/USDT", Price: decimal.NewFromFloat(0.45), Change: decimal.NewFromFloat(-1.3), Volume: decimal.NewFromInt(950000000), MarketCap: decimal.NewFromInt(15000000000)},
	{ID: 5, Name: "Polkadot", Symbol: "DOT/USDT", Price: decimal.NewFromFloat(6.23), Change: decimal.NewFromFloat(3.7), Volume: decimal.NewFromInt(750000000), MarketCap: decimal.NewFromInt(7500000000)},
}

// Asset is a static wallet holding for the assets table.
type Asset struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
	Value  decimal.Decimal `json:"value"`
	Price  decimal.Decimal `json:"price"`
	Change decimal.Decimal `json:"change"`
}

// Assets mirrors the holdings set of the dashboard.
var Assets = []Asset{
	{ID: 1, Name: "Bitcoin", Symbol: "BTC", Amount: decimal.NewFromFloat(0.75), Value: decimal.NewFromFloat(50917.84), Price: decimal.NewFromFloat(67890.45), Change: decimal.NewFromFloat(4.3)},
	{ID: 2, Name: "Ethereum", Symbol: "ETH", Amount: decimal.NewFromFloat(5.2), Value: decimal.NewFromFloat(12875.75), Price: decimal.NewFromFloat(2476.11), Change: decimal.NewFromFloat(-2.5)},
	{ID: 3, Name: "USD Coin", Symbol: "USDC", Amount: decimal.NewFromInt(3000), Value: decimal.NewFromInt(3000), Price: decimal.NewFromInt(1), Change: decimal.NewFromFloat(0.01)},
}
