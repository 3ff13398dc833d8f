package push

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Broadcast marshals v once and hands it to every sink.
func Broadcast(sinks []Sink, logger *zap.Logger, topic string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}
	for _, s := range sinks {
		s.Publish(topic, data)
	}
}
