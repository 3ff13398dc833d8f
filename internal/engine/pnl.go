package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

var hundred = decimal.NewFromInt(100)

// UnrealizedPnL marks a position to the given price. Pure function of the
// position and the price; the same formula books realized PnL at close time.
//
//	priceDiff = buy ? cur-entry : entry-cur
//	pnl       = priceDiff * amount * leverage
//	pnlPct    = priceDiff / entry * 100 * leverage
func UnrealizedPnL(p model.Position, price decimal.Decimal) (pnl, pnlPct decimal.Decimal) {
	var diff decimal.Decimal
	if p.Side == model.SideBuy {
		diff = price.Sub(p.EntryPrice)
	} else {
		diff = p.EntryPrice.Sub(price)
	}

	lev := decimal.NewFromInt(int64(p.Leverage))
	pnl = diff.Mul(p.Amount).Mul(lev)
	pnlPct = diff.Div(p.EntryPrice).Mul(hundred).Mul(lev)
	return pnl, pnlPct
}

// LiquidationPrice is the price at which a leveraged position's loss is
// assumed to exhaust margin: entry*(1-1/lev) for a long, entry*(1+1/lev)
// for a short.
func LiquidationPrice(side model.Side, entry decimal.Decimal, leverage int) decimal.Decimal {
	inv := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(leverage)))
	if side == model.SideBuy {
		return entry.Mul(decimal.NewFromInt(1).Sub(inv))
	}
	return entry.Mul(decimal.NewFromInt(1).Add(inv))
}

// AggregateRealized sums booked PnL over the whole record sequence. Always
// recomputed so it cannot drift from the records.
func AggregateRealized(records []model.PnLRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.PnL)
	}
	return total
}
