package infrastructure

import (
	"go.uber.org/zap"
)

// Logger is the process-wide structured logger, set by Init.
var Logger *zap.Logger

func Init() {
	Logger, _ = zap.NewProduction()
	Logger.Info("logger initialized", zap.String("service", "market-sim"))
}
