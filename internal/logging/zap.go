package logging

import (
	"fmt"

	"solana-lifecycle/internal/config"

	"github.com/zeromicro/go-zero/core/logx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ZapWriter sends logx output to a zap logger backed by a rotating json file.
type ZapWriter struct {
	logger *zap.Logger
	sink   *lumberjack.Logger
}

var _ logx.Writer = (*ZapWriter)(nil)

func NewZapWriter(c config.FileLogConf) *ZapWriter {
	sink := &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(sink), zapcore.DebugLevel)

	return &ZapWriter{logger: zap.New(core), sink: sink}
}

// Install replaces the logx writer when a log file is configured.
func Install(c config.FileLogConf) {
	if c.Path == "" {
		return
	}
	logx.SetWriter(NewZapWriter(c))
}

func (w *ZapWriter) Alert(v any) {
	w.logger.Error(fmt.Sprint(v))
}

func (w *ZapWriter) Close() error {
	_ = w.logger.Sync()
	return w.sink.Close()
}

func (w *ZapWriter) Debug(v any, fields ...logx.LogField) {
	w.logger.Debug(fmt.Sprint(v), toZapFields(fields)...)
}

func (w *ZapWriter) Error(v any, fields ...logx.LogField) {
	w.logger.Error(fmt.Sprint(v), toZapFields(fields)...)
}

func (w *ZapWriter) Info(v any, fields ...logx.LogField) {
	w.logger.Info(fmt.Sprint(v), toZapFields(fields)...)
}

func (w *ZapWriter) Severe(v any) {
	w.logger.Error(fmt.Sprint(v), zap.String("severity", "severe"))
}

func (w *ZapWriter) Slow(v any, fields ...logx.LogField) {
	w.logger.Warn(fmt.Sprint(v), toZapFields(fields)...)
}

func (w *ZapWriter) Stack(v any) {
	w.logger.Error(fmt.Sprint(v), zap.String("stack", fmt.Sprint(v)))
}

func (w *ZapWriter) Stat(v any, fields ...logx.LogField) {
	w.logger.Info(fmt.Sprint(v), toZapFields(fields)...)
}

func toZapFields(fields []logx.LogField) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
