// package logger provides the shared structured logger for all engine
// packages, backed by go.uber.org/zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the root engine logger. It defaults to a production configuration at
// info level; call Init to reconfigure it from host settings before starting
// the engine.
var Log *zap.Logger

var initOnce sync.Once

func init() {
	Log = zap.NewNop()
}

// Init configures the root logger. Safe to call once; later calls are ignored.
//
// Parameters:
//   - level: minimum level to emit ("debug", "info", "warn", "error"); unknown
//     values fall back to "info"
//   - development: when true, uses the human-readable console encoder instead
//     of the production JSON encoder
//
// Returns:
//   - error: error if the zap configuration failed to build
func Init(level string, development bool) error {
	var err error
	initOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		if development {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))

		var l *zap.Logger
		l, err = cfg.Build()
		if err != nil {
			return
		}
		Log = l
	})
	return err
}

// Named returns a child of the root logger tagged with the given subsystem
// name, e.g. "renderer" or "scene".
//
// Parameters:
//   - name: subsystem name appended to the logger's name chain
//
// Returns:
//   - *zap.Logger: the named child logger
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Sync flushes buffered log entries. Hosts should defer this after Init.
func Sync() {
	_ = Log.Sync()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
