package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Apple32452/crypto-trading-app/internal/market"
	"github.com/Apple32452/crypto-trading-app/internal/model"
)

func newTestEngine(t *testing.T, balance float64) *Engine {
	t.Helper()
	return New(Config{
		Symbol:         "BTC-USDT",
		InitialPrice:   decimal.NewFromFloat(67890.45),
		InitialBalance: decimal.NewFromFloat(balance),
		Timeframe:      model.Timeframe1H,
		Seed:           42,
	}, zap.NewNop())
}

func marketOrder(side model.Side, amount float64, leverage int) model.OrderRequest {
	return model.OrderRequest{
		Type:     model.OrderTypeMarket,
		Side:     side,
		Amount:   decimal.NewFromFloat(amount),
		Leverage: leverage,
	}
}

func TestNew_SeedsMarketState(t *testing.T) {
	e := newTestEngine(t, 25000)

	assert.Len(t, e.PriceHistory(), model.Timeframe1H.Points()+1)
	assert.Len(t, e.Tape(), market.TapeSize)
	assert.Len(t, e.OrderBook().Asks, 8)
	assert.Len(t, e.OrderBook().Bids, 8)
	assert.True(t, e.CurrentPrice().IsPositive())
}

func TestTick_SlidesWindowAndRegeneratesBook(t *testing.T) {
	e := newTestEngine(t, 25000)
	before := e.OrderBook()

	now := time.Now()
	for i := 0; i < 100; i++ {
		point := e.Tick(now.Add(time.Duration(i) * time.Second))
		require.True(t, point.Price.IsPositive())
		require.Len(t, e.PriceHistory(), model.Timeframe1H.Points()+1)
	}

	after := e.OrderBook()
	assert.False(t, before.Asks[0].Price.Equal(after.Asks[0].Price))

	cur := e.CurrentPrice()
	for _, ask := range after.Asks {
		assert.True(t, ask.Price.GreaterThan(cur.Sub(decimal.NewFromInt(1))))
	}

	latest := e.PriceHistory()[model.Timeframe1H.Points()]
	assert.True(t, latest.Price.Equal(cur))
}

func TestRefreshTape_KeepsFixedWindow(t *testing.T) {
	e := newTestEngine(t, 25000)

	for i := 0; i < 30; i++ {
		at := time.Now().Add(time.Duration(i) * 10 * time.Second)
		head := e.RefreshTape(at)
		assert.True(t, head.Time.Equal(at))
		assert.Len(t, e.Tape(), market.TapeSize)
	}
}

func TestSetTimeframe_RegeneratesBackfill(t *testing.T) {
	e := newTestEngine(t, 25000)

	e.SetTimeframe(model.Timeframe1D)

	assert.Equal(t, model.Timeframe1D, e.Timeframe())
	assert.Len(t, e.PriceHistory(), model.Timeframe1D.Points()+1)
	assert.True(t, e.ChangePercent().IsZero())
}

func TestPlaceOrder_MarketOpensPosition(t *testing.T) {
	e := newTestEngine(t, 1e9)
	e.price = decimal.NewFromInt(50000)

	order, err := e.PlaceOrder(marketOrder(model.SideBuy, 0.5, 5))
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusFilled, order.Status)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(50000)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(25000)))

	positions := e.Positions()
	require.Len(t, positions, 1)
	p := positions[0]
	assert.Equal(t, "BTC-USDT", p.Symbol)
	assert.Equal(t, model.SideBuy, p.Side)
	assert.True(t, p.EntryPrice.Equal(decimal.NewFromInt(50000)))
	// 50000*(1-1/5) = 40000
	assert.True(t, p.LiquidationPrice.Equal(decimal.NewFromInt(40000)))

	orders := e.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestPlaceOrder_LimitDoesNotOpenPosition(t *testing.T) {
	e := newTestEngine(t, 1e9)

	order, err := e.PlaceOrder(model.OrderRequest{
		Type:     model.OrderTypeLimit,
		Side:     model.SideSell,
		Price:    decimal.NewFromInt(70000),
		Amount:   decimal.NewFromFloat(0.1),
		Leverage: 10,
		PostOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusFilled, order.Status)
	assert.True(t, order.PostOnly)
	assert.True(t, order.Price.Equal(decimal.NewFromInt(70000)))
	assert.Empty(t, e.Positions())
}

func TestPlaceOrder_Validation(t *testing.T) {
	e := newTestEngine(t, 25000)

	_, err := e.PlaceOrder(marketOrder(model.SideBuy, 0, 10))
	assert.ErrorIs(t, err, ErrInvalidOrderAmount)

	_, err = e.PlaceOrder(marketOrder(model.SideBuy, -1, 10))
	assert.ErrorIs(t, err, ErrInvalidOrderAmount)

	_, err = e.PlaceOrder(marketOrder(model.SideBuy, 0.1, 7))
	assert.ErrorIs(t, err, ErrInvalidLeverage)

	// 67890.45 * 1 * 100 far exceeds the 25000 balance.
	_, err = e.PlaceOrder(marketOrder(model.SideBuy, 1, 100))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Rejections leave no trace in the histories.
	assert.Empty(t, e.Orders())
	assert.Empty(t, e.Positions())
}

func TestPlaceOrder_LimitRequiresPositivePrice(t *testing.T) {
	e := newTestEngine(t, 25000)

	for _, typ := range []model.OrderType{model.OrderTypeLimit, model.OrderTypeStop} {
		for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
			_, err := e.PlaceOrder(model.OrderRequest{
				Type:     typ,
				Side:     model.SideSell,
				Price:    price,
				Amount:   decimal.NewFromInt(1000),
				Leverage: 100,
			})
			assert.ErrorIs(t, err, ErrInvalidOrderPrice)
		}
	}

	assert.Empty(t, e.Orders())
}

func TestClosePosition(t *testing.T) {
	e := newTestEngine(t, 1e9)
	e.price = decimal.NewFromInt(100)

	_, err := e.PlaceOrder(marketOrder(model.SideBuy, 1, 10))
	require.NoError(t, err)
	positionID := e.Positions()[0].ID

	e.price = decimal.NewFromInt(110)

	closed, err := e.ClosePosition(positionID)
	require.NoError(t, err)

	// (110-100)*1*10 = 100, (10/100)*100*10 = 100%
	assert.True(t, closed.PnLRecord.PnL.Equal(decimal.NewFromInt(100)), "pnl = %s", closed.PnLRecord.PnL)
	assert.True(t, closed.PnLRecord.PnLPercentage.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, positionID, closed.PnLRecord.PositionID)
	assert.True(t, closed.PnLRecord.ExitPrice.Equal(decimal.NewFromInt(110)))

	// Closing order inverts the side and covers the full amount.
	assert.Equal(t, model.SideSell, closed.ClosingOrder.Side)
	assert.True(t, closed.ClosingOrder.Amount.Equal(decimal.NewFromInt(1)))
	assert.True(t, closed.ClosingOrder.Total.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, model.OrderStatusFilled, closed.ClosingOrder.Status)
	require.NotNil(t, closed.ClosingOrder.PnL)
	assert.True(t, closed.ClosingOrder.PnL.Equal(decimal.NewFromInt(100)))

	assert.Empty(t, e.Positions())
	require.Len(t, e.Orders(), 2)
	assert.Equal(t, closed.ClosingOrder.ID, e.Orders()[0].ID, "closing order not newest-first")

	assert.True(t, e.RealizedPnL().Equal(decimal.NewFromInt(100)))
	assert.True(t, e.AvailableBalance().Equal(decimal.NewFromFloat(1e9).Add(decimal.NewFromInt(100))))
}

func TestClosePosition_NotFound(t *testing.T) {
	e := newTestEngine(t, 25000)

	_, err := e.ClosePosition("no-such-position")
	assert.ErrorIs(t, err, ErrPositionNotFound)
}

func TestClosePosition_AggregatesRealized(t *testing.T) {
	e := newTestEngine(t, 1e9)

	// Two round trips with +50 and -20 must aggregate to 30.
	e.price = decimal.NewFromInt(100)
	_, err := e.PlaceOrder(marketOrder(model.SideBuy, 1, 5))
	require.NoError(t, err)
	e.price = decimal.NewFromInt(110)
	closed, err := e.ClosePosition(e.Positions()[0].ID)
	require.NoError(t, err)
	require.True(t, closed.PnLRecord.PnL.Equal(decimal.NewFromInt(50)))

	e.price = decimal.NewFromInt(100)
	_, err = e.PlaceOrder(marketOrder(model.SideBuy, 2, 1))
	require.NoError(t, err)
	e.price = decimal.NewFromInt(90)
	closed, err = e.ClosePosition(e.Positions()[0].ID)
	require.NoError(t, err)
	require.True(t, closed.PnLRecord.PnL.Equal(decimal.NewFromInt(-20)))

	assert.True(t, e.RealizedPnL().Equal(decimal.NewFromInt(30)))
	require.Len(t, e.PnLHistory(), 2)
	// Newest first.
	assert.True(t, e.PnLHistory()[0].PnL.Equal(decimal.NewFromInt(-20)))
}
