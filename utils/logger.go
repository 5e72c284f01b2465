package utils

import "go.uber.org/zap"

// NewLogger returns a development logger for local runs and a production logger otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" || env == "dev" || env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// LogNotifier writes customer-facing messages to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Success(msg string) { n.Logger.Info("notify", zap.String("level", "success"), zap.String("message", msg)) }
func (n LogNotifier) Error(msg string)   { n.Logger.Warn("notify", zap.String("level", "error"), zap.String("message", msg)) }
func (n LogNotifier) Info(msg string)    { n.Logger.Info("notify", zap.String("level", "info"), zap.String("message", msg)) }
