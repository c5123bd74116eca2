package logger

import (
	"go.uber.org/zap"

	"github.com/pageza/fridge-inventory/backend/config"
)

// New builds the application logger for the given environment.
func New(env config.Environment) (*zap.Logger, error) {
	switch env {
	case config.Production, config.CI:
		return zap.NewProduction()
	case config.Test:
		return zap.NewNop(), nil
	default:
		return zap.NewDevelopment()
	}
}

// Must is like New but panics on error.
func Must(env config.Environment) *zap.Logger {
	l, err := New(env)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return l
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync(l *zap.Logger) {
	_ = l.Sync()
}
