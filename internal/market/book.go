package market

import (
	"math/rand"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

const (
	bookDepth      = 8
	bookLevelShift = 0.0001 // per-level offset as a fraction of price
)

// SynthesizeBook derives fresh bid/ask ladders from the current price: 8
// levels each side, spaced i*price*0.0001 away, amounts drawn from [0, 2).
func SynthesizeBook(rng *rand.Rand, price decimal.Decimal) model.OrderBook {
	asks := make([]model.BookLevel, 0, bookDepth)
	bids := make([]model.BookLevel, 0, bookDepth)

	for i := 1; i <= bookDepth; i++ {
		offset := price.Mul(decimal.NewFromFloat(float64(i) * bookLevelShift))

		askPrice := price.Add(offset)
		askAmount := decimal.NewFromFloat(rng.Float64() * 2)
		asks = append(asks, model.BookLevel{
			Price:  askPrice,
			Amount: askAmount,
			Total:  askPrice.Mul(askAmount),
		})

		bidPrice := price.Sub(offset)
		bidAmount := decimal.NewFromFloat(rng.Float64() * 2)
		bids = append(bids, model.BookLevel{
			Price:  bidPrice,
			Amount: bidAmount,
			Total:  bidPrice.Mul(bidAmount),
		})
	}

	sort.Slice(asks, func(i, j int) bool { return asks[i].Price.LessThan(asks[j].Price) })
	sort.Slice(bids, func(i, j int) bool { return bids[i].Price.GreaterThan(bids[j].Price) })

	return model.OrderBook{Asks: asks, Bids: bids}
}
