package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

// Logger is the package wide default logger. It is a Nop logger until
// InitLogger is called.
var Logger = zap.NewNop()

type Config struct {
	level   zapcore.Level
	filters string
	devMode bool
}

type Option func(*Config)

// WithLevel sets the minimum level for emitted log entries.
func WithLevel(level zapcore.Level) Option {
	return func(c *Config) { c.level = level }
}

// WithFilters installs zapfilter rules (for example "debug:grid* info:*")
// on top of the level threshold.
func WithFilters(rules string) Option {
	return func(c *Config) { c.filters = rules }
}

func WithDevMode() Option {
	return func(c *Config) { c.devMode = true }
}

// InitLogger creates the default logger used by the application.
func InitLogger(opts ...Option) *zap.Logger {
	cfg := &Config{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(cfg)
	}
	var encoder zapcore.Encoder
	if cfg.devMode {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), cfg.level)
	if cfg.filters != "" {
		core = zapfilter.NewFilteringCore(core, zapfilter.MustParseRules(cfg.filters))
	}
	Logger = zap.New(core)
	return Logger
}

func ParseLevel(arg string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(arg)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", arg, err)
	}
	return l, nil
}

// Named returns a named logger for a subsystem.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

func Debug(msg string, fields ...zap.Field) { Logger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Logger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Logger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Logger.Error(msg, fields...) }
func Fatal(msg string, fields ...zap.Field) { Logger.Fatal(msg, fields...) }

func ErrorField(err error) zap.Field { return zap.Error(err) }

func String(key, val string) zap.Field { return zap.String(key, val) }

func Int(key string, val int) zap.Field { return zap.Int(key, val) }
