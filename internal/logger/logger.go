package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop()

func Init() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		zap.InfoLevel,
	)

	base = zap.New(core)
	base.Info("logger initialized")
}

func toFields(fields map[string]any) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zf = append(zf, zap.Any(k, v))
	}
	return zf
}

func Info(msg string, fields map[string]any) {
	base.Info(msg, toFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	base.Warn(msg, toFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	base.Error(msg, toFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	base.Fatal(msg, toFields(fields)...)
}
