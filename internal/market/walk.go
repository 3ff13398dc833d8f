package market

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

const (
	backfillVolatility = 0.0005
	tickVolatility     = 0.0008
)

// Backfill generates the historical price series for a timeframe, walking
// backward-to-forward from now. It returns the emitted points and the final
// unrounded price the live walk continues from.
func Backfill(rng *rand.Rand, initial decimal.Decimal, tf model.Timeframe, now time.Time) ([]model.PricePoint, decimal.Decimal) {
	n := tf.Points()
	step := tf.Step()
	points := make([]model.PricePoint, 0, n+1)

	price := initial
	for i := n; i >= 0; i-- {
		u := rng.Float64()*2 - 1
		next := price.Mul(decimal.NewFromFloat(1 + u*backfillVolatility))
		if next.IsPositive() {
			price = next
		}
		points = append(points, model.PricePoint{
			Time:   now.Add(-time.Duration(i) * step),
			Price:  price.Round(2),
			Volume: RandomVolume(rng),
		})
	}
	return points, price
}

// NextTick advances the unrounded price by one live step:
// price + sign*rand*volatility*price. A draw that would push the price to
// zero or below is discarded and the previous price kept.
func NextTick(rng *rand.Rand, price decimal.Decimal) decimal.Decimal {
	sign := 1.0
	if rng.Float64() <= 0.5 {
		sign = -1
	}
	change := price.Mul(decimal.NewFromFloat(sign * rng.Float64() * tickVolatility))
	next := price.Add(change)
	if !next.IsPositive() {
		return price
	}
	return next
}

// ChangePercent is the per-tick percentage move, rounded to 2 decimals.
func ChangePercent(prev, cur decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

// RandomVolume draws the per-point display volume, floor(rand*10+5).
func RandomVolume(rng *rand.Rand) decimal.Decimal {
	return decimal.NewFromInt(int64(rng.Float64()*10 + 5))
}
