package market

import (
	"sync"
	"time"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

// CandleBuilder aggregates emitted price points into fixed-period OHLCV
// candles. The candle whose window has passed is moved into a bounded
// history on the next Add.
type CandleBuilder struct {
	mu      sync.Mutex
	symbol  string
	period  time.Duration
	label   string
	current *model.Candle
	history []model.Candle
	limit   int
}

func NewCandleBuilder(symbol string, period time.Duration, label string, limit int) *CandleBuilder {
	return &CandleBuilder{
		symbol:  symbol,
		period:  period,
		label:   label,
		history: make([]model.Candle, 0, limit),
		limit:   limit,
	}
}

// Add folds one price point into the current candle, rolling the window
// forward when the point falls into a later bucket.
func (b *CandleBuilder) Add(p model.PricePoint) {
	b.mu.Lock()
	defer b.mu.Unlock()

	window := p.Time.Truncate(b.period)

	if b.current == nil || window.After(b.current.Timestamp) {
		if b.current != nil {
			b.history = append(b.history, *b.current)
			if len(b.history) > b.limit {
				b.history = b.history[len(b.history)-b.limit:]
			}
		}
		b.current = &model.Candle{
			Symbol:    b.symbol,
			Period:    b.label,
			Open:      p.Price,
			High:      p.Price,
			Low:       p.Price,
			Close:     p.Price,
			Volume:    p.Volume,
			Timestamp: window,
		}
		return
	}

	if p.Price.GreaterThan(b.current.High) {
		b.current.High = p.Price
	}
	if p.Price.LessThan(b.current.Low) {
		b.current.Low = p.Price
	}
	b.current.Close = p.Price
	b.current.Volume = b.current.Volume.Add(p.Volume)
}

// History returns up to limit closed candles plus the in-progress one,
// newest last.
func (b *CandleBuilder) History(limit int) []model.Candle {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]model.Candle, 0, limit)
	out = append(out, b.history...)
	if b.current != nil {
		out = append(out, *b.current)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Reset drops all accumulated candles, used when the timeframe changes and
// the backfill is regenerated.
func (b *CandleBuilder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
	b.history = b.history[:0]
}
