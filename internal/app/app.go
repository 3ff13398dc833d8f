package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Apple32452/crypto-trading-app/api"
	"github.com/Apple32452/crypto-trading-app/internal/config"
	"github.com/Apple32452/crypto-trading-app/internal/engine"
	"github.com/Apple32452/crypto-trading-app/internal/infrastructure"
	"github.com/Apple32452/crypto-trading-app/internal/market"
	"github.com/Apple32452/crypto-trading-app/internal/model"
	"github.com/Apple32452/crypto-trading-app/internal/push"
)

// App defines the application structure and its dependencies
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Engine     *engine.Engine
	Candles    *market.CandleBuilder
	Gateway    *push.PushGateway
	Sinks      []push.Sink
	NC         *nats.Conn
	HTTPServer *http.Server
}

// NewApp creates a new application instance
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	infrastructure.Init()
	logger := infrastructure.Logger

	return &App{
		Config: &cfg,
		Logger: logger,
	}, nil
}

// Init builds the simulation and its outbound channels
func (a *App) Init(ctx context.Context) error {
	tf, err := model.ParseTimeframe(a.Config.Timeframe)
	if err != nil {
		return fmt.Errorf("failed to parse timeframe: %w", err)
	}

	a.Engine = engine.New(engine.Config{
		Symbol:         a.Config.Symbol,
		InitialPrice:   decimal.NewFromFloat(a.Config.InitialPrice),
		InitialBalance: decimal.NewFromFloat(a.Config.InitialBalance),
		Timeframe:      tf,
		Seed:           a.Config.Seed,
	}, a.Logger)

	a.Candles = market.NewCandleBuilder(a.Config.Symbol, time.Minute, "1m", 500)

	a.Gateway = push.NewPushGateway(a.Logger)
	a.Sinks = []push.Sink{a.Gateway}

	if a.Config.NatsURL != "" {
		nc, js, err := infrastructure.InitNATS(a.Config.NatsURL, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		a.NC = nc
		a.Sinks = append(a.Sinks, infrastructure.NewNATSMirror(js, a.Config.Symbol, a.Logger))
	}

	return nil
}

// Run starts the simulation loops and the HTTP server
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.startSimulation(ctx)

	a.HTTPServer = &http.Server{
		Addr:    ":" + a.Config.Port,
		Handler: a.setupRouter(),
	}

	go func() {
		a.Logger.Info("starting http server", zap.String("port", a.Config.Port))
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	return a.waitForShutdown(cancel)
}

// waitForShutdown handles graceful shutdown signals
func (a *App) waitForShutdown(cancel context.CancelFunc) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	a.Logger.Info("shutting down...")

	// Stop the tick loops first so no orphaned tick mutates state while the
	// server drains.
	cancel()

	ctx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTimeout()

	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.NC != nil {
		a.NC.Close()
	}

	return nil
}

// setupRouter configures the Gin router and its routes
func (a *App) setupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	apiHandler := api.NewHandler(a.Engine, a.Candles, a.Sinks, a.Logger)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/orders", apiHandler.PlaceOrder)
		v1.GET("/orders", apiHandler.GetOrders)
		v1.DELETE("/positions/:id", apiHandler.ClosePosition)
		v1.GET("/positions", apiHandler.GetPositions)
		v1.GET("/pnl", apiHandler.GetPnL)
		v1.GET("/price", apiHandler.GetPrice)
		v1.GET("/price/history", apiHandler.GetPriceHistory)
		v1.GET("/orderbook", apiHandler.GetOrderBook)
		v1.GET("/trades/recent", apiHandler.GetRecentTrades)
		v1.GET("/klines", apiHandler.GetKlines)
		v1.GET("/markets", apiHandler.GetMarkets)
		v1.GET("/assets", apiHandler.GetAssets)
		v1.PUT("/timeframe", apiHandler.SetTimeframe)
	}

	r.GET("/ws", func(c *gin.Context) {
		a.Gateway.ServeHTTP(c.Writer, c.Request)
	})

	return r
}
