package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Init configures the global logger. Production gets JSON output at
// info level, everything else gets a human-readable console encoder
// with debug enabled.
func Init(environment string) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	log = l.Sugar()
}

func ensure() {
	if log == nil {
		Init("development")
	}
}

func Debug(msg string, keysAndValues ...any) {
	ensure()
	log.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	ensure()
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	ensure()
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	ensure()
	log.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	ensure()
	log.Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered entries; call on shutdown.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
