package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New returns the JSON zap logger used by both the agent and the collector.
// LOG_LEVEL=debug lowers the threshold.
func New() *zap.Logger {
	logLevel := zapcore.InfoLevel
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		logLevel,
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// NewGormLogger adapts gorm's SQL logging onto zap at debug level.
func NewGormLogger(logger *zap.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if os.Getenv("LOG_LEVEL") == "silent" {
		level = gormlogger.Silent
	}

	return gormlogger.New(zapWriter{logger: logger.Sugar()}, gormlogger.Config{
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

type zapWriter struct {
	logger *zap.SugaredLogger
}

func (w zapWriter) Printf(message string, data ...interface{}) {
	w.logger.Debugf(message, data...)
}
