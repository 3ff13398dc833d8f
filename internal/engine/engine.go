package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Apple32452/crypto-trading-app/internal/infrastructure"
	"github.com/Apple32452/crypto-trading-app/internal/market"
	"github.com/Apple32452/crypto-trading-app/internal/model"
)

// Config carries the initial state of a simulation.
type Config struct {
	Symbol         string
	InitialPrice   decimal.Decimal
	InitialBalance decimal.Decimal
	Timeframe      model.Timeframe
	Seed           int64 // 0 means seed from the clock
}

// Engine owns all simulation state: the canonical price, the derived book
// and tape, open positions and the order/PnL histories. Every mutation and
// read goes through one mutex, so the tick loop and the HTTP/WS readers can
// run side by side.
type Engine struct {
	mu     sync.Mutex
	logger *zap.Logger
	rng    *rand.Rand

	symbol         string
	initialPrice   decimal.Decimal
	initialBalance decimal.Decimal
	timeframe      model.Timeframe

	price     decimal.Decimal // canonical, unrounded
	changePct decimal.Decimal
	history   []model.PricePoint
	book      model.OrderBook
	tape      []model.Trade

	positions  []model.Position
	orders     []model.Order     // newest first
	pnlHistory []model.PnLRecord // newest first
}

func New(cfg Config, logger *zap.Logger) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	e := &Engine{
		logger:         logger,
		rng:            rng,
		symbol:         cfg.Symbol,
		initialPrice:   cfg.InitialPrice,
		initialBalance: cfg.InitialBalance,
		timeframe:      cfg.Timeframe,
	}

	now := time.Now()
	e.history, e.price = market.Backfill(rng, cfg.InitialPrice, cfg.Timeframe, now)
	e.book = market.SynthesizeBook(rng, e.price)
	e.tape = market.SeedTape(rng, e.price, now)

	logger.Info("simulation initialized",
		zap.String("symbol", cfg.Symbol),
		zap.String("timeframe", string(cfg.Timeframe)),
		zap.String("price", e.price.Round(2).String()),
	)
	return e
}

// Tick advances the price by one live step, slides the history window and
// regenerates the order book. Returns the emitted price point.
func (e *Engine) Tick(now time.Time) model.PricePoint {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.price
	e.price = market.NextTick(e.rng, prev)
	e.changePct = market.ChangePercent(prev, e.price)

	point := model.PricePoint{
		Time:   now,
		Price:  e.price.Round(2),
		Volume: market.RandomVolume(e.rng),
	}
	e.history = append(e.history, point)
	if window := e.timeframe.Points() + 1; len(e.history) > window {
		e.history = e.history[len(e.history)-window:]
	}

	e.book = market.SynthesizeBook(e.rng, e.price)

	infrastructure.TicksGenerated.WithLabelValues(e.symbol).Inc()
	return point
}

// RefreshTape rolls the trade tape forward by one synthetic trade.
func (e *Engine) RefreshTape(now time.Time) model.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tape = market.RefreshTape(e.rng, e.tape, e.price, now)
	return e.tape[0]
}

// SetTimeframe switches the chart timeframe and regenerates the whole
// backfill from the configured initial price. The existing series is not
// resampled.
func (e *Engine) SetTimeframe(tf model.Timeframe) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.timeframe = tf
	e.history, e.price = market.Backfill(e.rng, e.initialPrice, tf, time.Now())
	e.changePct = decimal.Zero
	e.book = market.SynthesizeBook(e.rng, e.price)

	e.logger.Info("timeframe changed", zap.String("timeframe", string(tf)))
}

// PlaceOrder validates and settles an order request. All order types fill
// immediately; only market orders open a position. Validation happens before
// any state mutation.
func (e *Engine) PlaceOrder(req model.OrderRequest) (model.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !req.Amount.IsPositive() {
		return model.Order{}, fmt.Errorf("place order: %w", ErrInvalidOrderAmount)
	}
	if !model.LeverageAllowed(req.Leverage) {
		return model.Order{}, fmt.Errorf("place order: leverage %dx: %w", req.Leverage, ErrInvalidLeverage)
	}

	fillPrice := req.Price
	if req.Type == model.OrderTypeMarket {
		fillPrice = e.price.Round(2)
	} else if !req.Price.IsPositive() {
		return model.Order{}, fmt.Errorf("place order: %w", ErrInvalidOrderPrice)
	}

	lev := decimal.NewFromInt(int64(req.Leverage))
	total := fillPrice.Mul(req.Amount)
	if total.Mul(lev).GreaterThan(e.availableBalanceLocked()) {
		return model.Order{}, fmt.Errorf("place order: %w", ErrInsufficientBalance)
	}

	now := time.Now()
	order := model.Order{
		ID:         uuid.NewString(),
		Type:       req.Type,
		Side:       req.Side,
		Price:      fillPrice,
		Amount:     req.Amount,
		Leverage:   req.Leverage,
		Total:      total,
		ReduceOnly: req.ReduceOnly,
		PostOnly:   req.Type == model.OrderTypeLimit && req.PostOnly,
		Timestamp:  now,
		Status:     model.OrderStatusFilled,
	}
	e.orders = append([]model.Order{order}, e.orders...)

	if req.Type == model.OrderTypeMarket {
		position := model.Position{
			ID:               uuid.NewString(),
			Symbol:           e.symbol,
			Side:             req.Side,
			Amount:           req.Amount,
			EntryPrice:       fillPrice,
			Leverage:         req.Leverage,
			LiquidationPrice: LiquidationPrice(req.Side, fillPrice, req.Leverage),
			Timestamp:        now,
		}
		e.positions = append(e.positions, position)
		infrastructure.PositionsOpen.Inc()

		e.logger.Info("position opened",
			zap.String("position_id", position.ID),
			zap.String("side", string(position.Side)),
			zap.String("entry_price", position.EntryPrice.String()),
			zap.Int("leverage", position.Leverage),
		)
	}

	infrastructure.OrdersPlaced.WithLabelValues(string(req.Type), string(req.Side)).Inc()
	return order, nil
}

// ClosePosition closes the full remaining amount of an open position at the
// current price, books a PnL record and emits the inverted closing order.
func (e *Engine) ClosePosition(positionID string) (model.ClosedPosition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := -1
	for i, p := range e.positions {
		if p.ID == positionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ClosedPosition{}, fmt.Errorf("close position %s: %w", positionID, ErrPositionNotFound)
	}

	position := e.positions[idx]
	exitPrice := e.price.Round(2)
	pnl, pnlPct := UnrealizedPnL(position, exitPrice)
	now := time.Now()

	closingOrder := model.Order{
		ID:        uuid.NewString(),
		Type:      model.OrderTypeMarket,
		Side:      position.Side.Opposite(),
		Price:     exitPrice,
		Amount:    position.Amount,
		Leverage:  position.Leverage,
		Total:     exitPrice.Mul(position.Amount),
		Timestamp: now,
		Status:    model.OrderStatusFilled,

		PnL:           &pnl,
		PnLPercentage: &pnlPct,
	}
	record := model.PnLRecord{
		ID:            uuid.NewString(),
		PositionID:    position.ID,
		EntryPrice:    position.EntryPrice,
		ExitPrice:     exitPrice,
		Amount:        position.Amount,
		Leverage:      position.Leverage,
		PnL:           pnl,
		PnLPercentage: pnlPct,
		Timestamp:     now,
	}

	e.orders = append([]model.Order{closingOrder}, e.orders...)
	e.pnlHistory = append([]model.PnLRecord{record}, e.pnlHistory...)
	e.positions = append(e.positions[:idx], e.positions[idx+1:]...)

	infrastructure.PositionsOpen.Dec()
	infrastructure.PositionsClosed.Inc()

	e.logger.Info("position closed",
		zap.String("position_id", position.ID),
		zap.String("exit_price", exitPrice.String()),
		zap.String("pnl", pnl.String()),
	)

	return model.ClosedPosition{ClosingOrder: closingOrder, PnLRecord: record}, nil
}

func (e *Engine) availableBalanceLocked() decimal.Decimal {
	return e.initialBalance.Add(AggregateRealized(e.pnlHistory))
}

// Symbol returns the traded instrument.
func (e *Engine) Symbol() string { return e.symbol }

// Timeframe returns the active chart timeframe.
func (e *Engine) Timeframe() model.Timeframe {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timeframe
}

// CurrentPrice returns the latest price rounded to display precision.
func (e *Engine) CurrentPrice() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.price.Round(2)
}

// ChangePercent returns the last per-tick percentage move.
func (e *Engine) ChangePercent() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.changePct
}

// PriceHistory returns a copy of the sliding price window, oldest first.
func (e *Engine) PriceHistory() []model.PricePoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.PricePoint, len(e.history))
	copy(out, e.history)
	return out
}

// OrderBook returns the ladders generated on the last tick.
func (e *Engine) OrderBook() model.OrderBook {
	e.mu.Lock()
	defer e.mu.Unlock()
	book := model.OrderBook{
		Asks: make([]model.BookLevel, len(e.book.Asks)),
		Bids: make([]model.BookLevel, len(e.book.Bids)),
	}
	copy(book.Asks, e.book.Asks)
	copy(book.Bids, e.book.Bids)
	return book
}

// Tape returns the current trade tape, most-recent-first.
func (e *Engine) Tape() []model.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Trade, len(e.tape))
	copy(out, e.tape)
	return out
}

// Positions returns all open positions marked to the current price.
func (e *Engine) Positions() []model.PositionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.price.Round(2)
	out := make([]model.PositionView, 0, len(e.positions))
	for _, p := range e.positions {
		pnl, pnlPct := UnrealizedPnL(p, cur)
		out = append(out, model.PositionView{
			Position:      p,
			CurrentPrice:  cur,
			PnL:           pnl,
			PnLPercentage: pnlPct,
		})
	}
	return out
}

// Orders returns the order history, newest first.
func (e *Engine) Orders() []model.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// PnLHistory returns booked PnL records, newest first.
func (e *Engine) PnLHistory() []model.PnLRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.PnLRecord, len(e.pnlHistory))
	copy(out, e.pnlHistory)
	return out
}

// RealizedPnL returns the aggregate of all booked PnL records.
func (e *Engine) RealizedPnL() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return AggregateRealized(e.pnlHistory)
}

// AvailableBalance is the configured balance adjusted by realized PnL.
func (e *Engine) AvailableBalance() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.availableBalanceLocked()
}
