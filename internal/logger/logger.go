package logger

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base atomic.Pointer[zap.Logger]

func init() {
	// Callers that skip Init (tests) get a no-op logger.
	base.Store(zap.NewNop())
}

// Init installs the process-wide JSON logger. Call once from main.
func Init() {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	base.Store(zap.New(core))
	Info("logger initialized", nil)
}

func get() *zap.Logger {
	return base.Load()
}

func toFields(fields map[string]any) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func Info(msg string, fields map[string]any) {
	get().Info(msg, toFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	get().Warn(msg, toFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	get().Error(msg, toFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	get().Fatal(msg, toFields(fields)...)
}
