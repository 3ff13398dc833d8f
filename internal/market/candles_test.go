package market

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apple32452/crypto-trading-app/internal/model"
)

func TestCandleBuilder_Aggregation(t *testing.T) {
	b := NewCandleBuilder("BTC-USDT", time.Minute, "1m", 100)
	now := time.Now().Truncate(time.Minute)

	// 1. First point opens the candle
	b.Add(model.PricePoint{
		Time:   now.Add(10 * time.Second),
		Price:  decimal.NewFromFloat(50000),
		Volume: decimal.NewFromInt(7),
	})

	require.NotNil(t, b.current)
	assert.True(t, b.current.Open.Equal(decimal.NewFromFloat(50000)))
	assert.True(t, b.current.High.Equal(decimal.NewFromFloat(50000)))
	assert.True(t, b.current.Low.Equal(decimal.NewFromFloat(50000)))
	assert.True(t, b.current.Close.Equal(decimal.NewFromFloat(50000)))
	assert.True(t, b.current.Volume.Equal(decimal.NewFromInt(7)))

	// 2. Second point updates high and close
	b.Add(model.PricePoint{
		Time:   now.Add(20 * time.Second),
		Price:  decimal.NewFromFloat(50100),
		Volume: decimal.NewFromInt(5),
	})

	assert.True(t, b.current.High.Equal(decimal.NewFromFloat(50100)))
	assert.True(t, b.current.Low.Equal(decimal.NewFromFloat(50000)))
	assert.True(t, b.current.Close.Equal(decimal.NewFromFloat(50100)))
	assert.True(t, b.current.Volume.Equal(decimal.NewFromInt(12)))

	// 3. Third point updates low and close
	b.Add(model.PricePoint{
		Time:   now.Add(30 * time.Second),
		Price:  decimal.NewFromFloat(49900),
		Volume: decimal.NewFromInt(6),
	})

	assert.True(t, b.current.High.Equal(decimal.NewFromFloat(50100)))
	assert.True(t, b.current.Low.Equal(decimal.NewFromFloat(49900)))
	assert.True(t, b.current.Close.Equal(decimal.NewFromFloat(49900)))
	assert.True(t, b.current.Volume.Equal(decimal.NewFromInt(18)))
}

func TestCandleBuilder_RollsWindow(t *testing.T) {
	b := NewCandleBuilder("BTC-USDT", time.Minute, "1m", 100)
	now := time.Now().Truncate(time.Minute)

	b.Add(model.PricePoint{Time: now.Add(5 * time.Second), Price: decimal.NewFromInt(100), Volume: decimal.NewFromInt(1)})
	b.Add(model.PricePoint{Time: now.Add(time.Minute + 5*time.Second), Price: decimal.NewFromInt(110), Volume: decimal.NewFromInt(2)})

	history := b.History(10)
	require.Len(t, history, 2)

	closed := history[0]
	assert.True(t, closed.Close.Equal(decimal.NewFromInt(100)))
	assert.True(t, closed.Timestamp.Equal(now))
	assert.Equal(t, "1m", closed.Period)

	assert.True(t, history[1].Open.Equal(decimal.NewFromInt(110)))
}

func TestCandleBuilder_HistoryBound(t *testing.T) {
	b := NewCandleBuilder("BTC-USDT", time.Minute, "1m", 3)
	now := time.Now().Truncate(time.Minute)

	for i := 0; i < 10; i++ {
		b.Add(model.PricePoint{
			Time:   now.Add(time.Duration(i) * time.Minute),
			Price:  decimal.NewFromInt(int64(100 + i)),
			Volume: decimal.NewFromInt(1),
		})
	}

	history := b.History(0)
	assert.LessOrEqual(t, len(history), 4) // 3 closed plus the live candle

	b.Reset()
	assert.Empty(t, b.History(0))
}
