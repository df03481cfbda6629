// Package logger holds the process-wide zap logger.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	l    *zap.SugaredLogger
	once sync.Once
)

// L returns the shared sugared logger, building it on first use.
// GIN_MODE=debug switches to the human-readable development encoder.
func L() *zap.SugaredLogger {
	once.Do(func() {
		var base *zap.Logger
		var err error
		if os.Getenv("GIN_MODE") == "debug" {
			base, err = zap.NewDevelopment()
		} else {
			base, err = zap.NewProduction()
		}
		if err != nil {
			base = zap.NewNop()
		}
		l = base.Sugar()
	})
	return l
}

// Sync flushes buffered log entries; call on shutdown.
func Sync() {
	if l != nil {
		_ = l.Sync()
	}
}
