package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel parses a log level string.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelError:
		return "error"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// ZapLevel maps the level onto zap. Error also lets warnings through.
func (l LogLevel) ZapLevel() zapcore.Level {
	if l == LogLevelDebug {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// NewLogger creates a JSON file logger and the function that flushes and
// closes its file. LogLevelOff or an empty path yields a no-op logger whose
// closer does nothing. A leading "~/" in filePath is expanded.
func NewLogger(level LogLevel, filePath string) (*zap.Logger, func() error, error) {
	if level == LogLevelOff || filePath == "" {
		return NullLogger(), noopClose, nil
	}

	// Expand home directory
	if strings.HasPrefix(filePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, err
		}
		filePath = filepath.Join(home, filePath[2:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level.ZapLevel())
	logger := zap.New(core)

	closeLog := func() error {
		_ = logger.Sync()
		return f.Close()
	}
	return logger, closeLog, nil
}

func noopClose() error { return nil }

// NullLogger returns a logger that discards all output.
func NullLogger() *zap.Logger {
	return zap.NewNop()
}
