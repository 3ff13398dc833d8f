package infrastructure

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// InitNATS connects to NATS and ensures the MARKET stream exists. Simulation
// events are mirrored onto market.<topic>.<symbol> subjects so external
// consumers can tap the feed.
func InitNATS(url string, logger *zap.Logger) (*nats.Conn, nats.JetStreamContext, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, err
	}

	// Create stream if it doesn't exist
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     "MARKET",
		Subjects: []string{"market.*.*"},
	})
	if err != nil {
		// If stream exists, we might need to update it
		_, err = js.UpdateStream(&nats.StreamConfig{
			Name:     "MARKET",
			Subjects: []string{"market.*.*"},
		})
		if err != nil {
			logger.Warn("failed to create or update stream", zap.Error(err))
		}
	}

	return nc, js, nil
}

// NATSMirror republishes simulation events to JetStream. It satisfies the
// push.Sink interface alongside the in-process websocket hub.
type NATSMirror struct {
	js     nats.JetStreamContext
	symbol string
	logger *zap.Logger
}

func NewNATSMirror(js nats.JetStreamContext, symbol string, logger *zap.Logger) *NATSMirror {
	return &NATSMirror{js: js, symbol: symbol, logger: logger}
}

func (m *NATSMirror) Publish(topic string, data []byte) {
	subject := fmt.Sprintf("market.%s.%s", topic, m.symbol)
	if _, err := m.js.Publish(subject, data); err != nil {
		m.logger.Error("failed to publish to NATS", zap.String("subject", subject), zap.Error(err))
	}
}
