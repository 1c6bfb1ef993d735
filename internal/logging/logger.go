package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	mu     sync.RWMutex
)

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// Valid values: "debug", "info", "warn", "error", "silent".
// When unset or empty, warnings and errors are written to stderr.
const LogLevelEnvVar = "SPNAV_LOG_LEVEL"

// DefaultLevel is used when neither an explicit level nor LogLevelEnvVar is set.
// Config file diagnostics are warnings, so they stay visible by default.
const DefaultLevel = "warn"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks the SPNAV_LOG_LEVEL environment variable,
// and falls back to DefaultLevel. "silent" disables logging entirely.
func Initialize(level string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		level = DefaultLevel
	}

	level = strings.ToLower(strings.TrimSpace(level))
	if level == "silent" || level == "off" {
		SetLogger(zap.NewNop())
		return nil
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(built)

	return nil
}

// InitializeFromEnv initializes the logger from the SPNAV_LOG_LEVEL
// environment variable.
func InitializeFromEnv() error {
	return Initialize("")
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q (use debug, info, warn, error or silent)", level)
	}
}

// SetLogger replaces the global logger. Tests use it to install an observer.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	// Not initialized: warnings still go to stderr
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zapcore.WarnLevel,
		))
	}
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogSkippedLine logs a config file line that was ignored while parsing.
func LogSkippedLine(path string, line int, key string, reason string) {
	fields := []zap.Field{
		zap.String("path", path),
		zap.Int("line", line),
	}
	if key != "" {
		fields = append(fields, zap.String("key", key))
	}
	fields = append(fields, zap.String("reason", reason))

	Warn("Skipping config line", fields...)
}

// LogLockWait logs that a file lock is held by someone else and the caller
// is about to block on it.
func LogLockWait(path string, mode string) {
	Debug("Waiting for config file lock",
		zap.String("path", path),
		zap.String("mode", mode),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = GetLogger().Sync()
}
