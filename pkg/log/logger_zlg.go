package log

import (
	"context"
	"os"

	"github.com/rs/zerolog"
)

// ZlgLogger là implementation của Logger dựa trên zerolog, dùng khi cần log
// có cấu trúc (chạy trong CI hoặc đẩy log vào hệ thống thu thập).
type ZlgLogger struct {
	zl zerolog.Logger
}

func NewZlgLogger() (*ZlgLogger, error) {
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	return &ZlgLogger{zl: zl}, nil
}

func (l *ZlgLogger) Info(ctx context.Context, format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *ZlgLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *ZlgLogger) Error(ctx context.Context, format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *ZlgLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}
