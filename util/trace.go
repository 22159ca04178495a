package util

import (
	"time"

	"go.uber.org/zap"
)

// Trace logs how long a section took. Use as: defer util.Trace(logger, "name")()
func Trace(logger *zap.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Info("trace", zap.String("name", name), zap.Duration("elapsed", time.Since(start)))
	}
}
