package market

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

const (
	// TapeSize is the fixed length of the trade tape.
	TapeSize = 15

	tapeSpacing   = 30 * time.Second
	tapePriceBand = 0.0001 // symmetric perturbation as a fraction of price
	tapeMaxAmount = 0.5
)

// SeedTape builds the initial tape: TapeSize synthetic trades spaced 30
// simulated seconds apart, walking backward from now, most-recent-first.
func SeedTape(rng *rand.Rand, price decimal.Decimal, now time.Time) []model.Trade {
	trades := make([]model.Trade, 0, TapeSize)
	for i := 0; i < TapeSize; i++ {
		trades = append(trades, synthesizeTrade(rng, price, now.Add(-time.Duration(i)*tapeSpacing)))
	}
	return trades
}

// RefreshTape prepends one fresh trade and evicts the oldest, keeping the
// window fixed at TapeSize.
func RefreshTape(rng *rand.Rand, tape []model.Trade, price decimal.Decimal, now time.Time) []model.Trade {
	next := make([]model.Trade, 0, TapeSize)
	next = append(next, synthesizeTrade(rng, price, now))
	if len(tape) >= TapeSize {
		tape = tape[:TapeSize-1]
	}
	return append(next, tape...)
}

func synthesizeTrade(rng *rand.Rand, price decimal.Decimal, at time.Time) model.Trade {
	side := model.SideSell
	if rng.Float64() > 0.5 {
		side = model.SideBuy
	}

	// price +- up to 0.01% of price
	shift := rng.Float64()*2*tapePriceBand - tapePriceBand
	tradePrice := price.Mul(decimal.NewFromFloat(1 + shift))
	amount := decimal.NewFromFloat(rng.Float64() * tapeMaxAmount)

	return model.Trade{
		Price:  tradePrice,
		Amount: amount,
		Total:  tradePrice.Mul(amount),
		Side:   side,
		Time:   at,
	}
}
