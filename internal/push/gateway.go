package push

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Apple32452/crypto-trading-app/internal/infrastructure"
)

// Sink receives marshaled simulation events for a topic. The websocket
// gateway is one sink; the optional NATS mirror is another.
type Sink interface {
	Publish(topic string, data []byte)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

// PushGateway fans simulation events out to websocket clients. Clients
// subscribe to topics ("price", "orderbook", "trades", "positions",
// "orders") and receive the JSON snapshot published after each tick.
type PushGateway struct {
	logger        *zap.Logger
	clients       map[*Client]bool
	subscriptions map[string]map[*Client]bool
	mu            sync.RWMutex
}

func NewPushGateway(logger *zap.Logger) *PushGateway {
	return &PushGateway{
		logger:        logger,
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Publish sends data to every client subscribed to topic. Slow clients are
// skipped rather than blocking the tick loop.
func (g *PushGateway) Publish(topic string, data []byte) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for c := range g.subscriptions[topic] {
		select {
		case c.send <- data:
		default:
			// Do not block, just drop if channel is full
		}
	}
}

func (g *PushGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("failed to upgrade websocket", zap.Error(err))
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	g.mu.Lock()
	g.clients[client] = true
	g.mu.Unlock()
	infrastructure.WSConnections.Inc()

	go g.writePump(client)
	g.readPump(client)
}

func (g *PushGateway) readPump(c *Client) {
	defer func() {
		g.mu.Lock()
		delete(g.clients, c)
		for topic, clients := range g.subscriptions {
			delete(clients, c)
			if len(clients) == 0 {
				delete(g.subscriptions, topic)
			}
		}
		// Closing under the lock so Publish can never hit a closed channel.
		close(c.send)
		g.mu.Unlock()
		infrastructure.WSConnections.Dec()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req struct {
			Action string `json:"action"` // "subscribe", "unsubscribe"
			Topic  string `json:"topic"`
		}
		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}

		g.mu.Lock()
		switch req.Action {
		case "subscribe":
			if g.subscriptions[req.Topic] == nil {
				g.subscriptions[req.Topic] = make(map[*Client]bool)
			}
			g.subscriptions[req.Topic][c] = true
			g.logger.Info("client subscribed to topic", zap.String("topic", req.Topic))
		case "unsubscribe":
			if clients, ok := g.subscriptions[req.Topic]; ok {
				delete(clients, c)
				if len(clients) == 0 {
					delete(g.subscriptions, req.Topic)
				}
			}
		}
		g.mu.Unlock()
	}
}

func (g *PushGateway) writePump(c *Client) {
	defer c.conn.Close()
	for {
		message, ok := <-c.send
		if !ok {
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
