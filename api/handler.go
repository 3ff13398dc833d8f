package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Apple32452/crypto-trading-app/internal/engine"
	"github.com/Apple32452/crypto-trading-app/internal/market"
	"github.com/Apple32452/crypto-trading-app/internal/model"
	"github.com/Apple32452/crypto-trading-app/internal/push"
)

type Handler struct {
	engine  *engine.Engine
	candles *market.CandleBuilder
	sinks   []push.Sink
	logger  *zap.Logger
}

func NewHandler(eng *engine.Engine, candles *market.CandleBuilder, sinks []push.Sink, logger *zap.Logger) *Handler {
	return &Handler{
		engine:  eng,
		candles: candles,
		sinks:   sinks,
		logger:  logger,
	}
}

// Trading Handlers

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req model.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.engine.PlaceOrder(req)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrInsufficientBalance):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	push.Broadcast(h.sinks, h.logger, "orders", h.engine.Orders())
	push.Broadcast(h.sinks, h.logger, "positions", h.engine.Positions())

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) ClosePosition(c *gin.Context) {
	closed, err := h.engine.ClosePosition(c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrPositionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to close position", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	push.Broadcast(h.sinks, h.logger, "orders", h.engine.Orders())
	push.Broadcast(h.sinks, h.logger, "positions", h.engine.Positions())

	c.JSON(http.StatusOK, closed)
}

func (h *Handler) GetPositions(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Positions())
}

func (h *Handler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Orders())
}

func (h *Handler) GetPnL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"records":          h.engine.PnLHistory(),
		"realizedPnl":      h.engine.RealizedPnL(),
		"availableBalance": h.engine.AvailableBalance(),
	})
}

// Market Data Handlers

func (h *Handler) GetPrice(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symbol":        h.engine.Symbol(),
		"price":         h.engine.CurrentPrice(),
		"changePercent": h.engine.ChangePercent(),
		"timeframe":     h.engine.Timeframe(),
	})
}

func (h *Handler) GetPriceHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.PriceHistory())
}

func (h *Handler) GetOrderBook(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.OrderBook())
}

func (h *Handler) GetRecentTrades(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.Tape())
}

func (h *Handler) GetKlines(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	c.JSON(http.StatusOK, h.candles.History(limit))
}

func (h *Handler) GetMarkets(c *gin.Context) {
	c.JSON(http.StatusOK, model.Markets)
}

func (h *Handler) GetAssets(c *gin.Context) {
	c.JSON(http.StatusOK, model.Assets)
}

func (h *Handler) SetTimeframe(c *gin.Context) {
	var req struct {
		Timeframe string `json:"timeframe" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tf, err := model.ParseTimeframe(req.Timeframe)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.engine.SetTimeframe(tf)
	h.candles.Reset()

	c.JSON(http.StatusOK, gin.H{
		"timeframe": tf,
		"history":   h.engine.PriceHistory(),
	})
}
