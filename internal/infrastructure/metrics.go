package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TicksGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_price_ticks_total",
		Help: "Total number of simulated price ticks",
	}, []string{"symbol"})

	OrdersPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sim_orders_placed_total",
		Help: "Total number of orders placed",
	}, []string{"type", "side"})

	PositionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sim_positions_open",
		Help: "Number of currently open positions",
	})

	PositionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sim_positions_closed_total",
		Help: "Total number of positions closed",
	})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections_total",
		Help: "Total number of active WebSocket connections",
	})
)
