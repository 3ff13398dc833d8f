package app

import (
	"context"
	"time"

	"github.com/Apple32452/crypto-trading-app/internal/push"
)

// startSimulation runs the two timer loops that drive the market: a price
// tick every TickInterval and a tape refresh every TapeInterval. Both stop
// when ctx is cancelled.
func (a *App) startSimulation(ctx context.Context) {
	go a.tickLoop(ctx)
	go a.tapeLoop(ctx)
}

func (a *App) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(a.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("price tick loop stopped")
			return
		case now := <-ticker.C:
			point := a.Engine.Tick(now)
			a.Candles.Add(point)

			push.Broadcast(a.Sinks, a.Logger, "price", point)
			push.Broadcast(a.Sinks, a.Logger, "orderbook", a.Engine.OrderBook())
			push.Broadcast(a.Sinks, a.Logger, "positions", a.Engine.Positions())
		}
	}
}

func (a *App) tapeLoop(ctx context.Context) {
	ticker := time.NewTicker(a.Config.TapeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("tape refresh loop stopped")
			return
		case now := <-ticker.C:
			a.Engine.RefreshTape(now)
			push.Broadcast(a.Sinks, a.Logger, "trades", a.Engine.Tape())
		}
	}
}
