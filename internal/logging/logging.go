// internal/logging/logging.go
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the CLI logger: production JSON on stderr, debug level
// under --verbose, errors only under --quiet.
func New(verbose, quiet bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	switch {
	case verbose:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case quiet:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	return cfg.Build()
}

// Nop returns a disabled logger for tests and library callers.
func Nop() *zap.Logger { return zap.NewNop() }
