// Package logger provides the global structured logger for prospect-cli.
// Commands call Initialize once at startup; everything else uses the
// package-level Logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger instance.
var Logger *zap.SugaredLogger

func init() {
	// Safe no-op logger until Initialize is called. Prevents nil panics
	// when packages log during early startup or in tests.
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger.
// With jsonOutput, logs are emitted as production JSON for machine
// consumption; otherwise a human-readable console encoder is used.
// verbose lowers the level to Debug.
func Initialize(verbose, jsonOutput bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	if jsonOutput {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err := config.Build()
		if err != nil {
			return err
		}
		Logger = zapLogger.Sugar()
		return nil
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	zapLogger := zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		),
	)
	Logger = zapLogger.Sugar()
	return nil
}

// Sync flushes any buffered log entries. Best effort; safe to defer from main.
func Sync() {
	_ = Logger.Sync()
}
