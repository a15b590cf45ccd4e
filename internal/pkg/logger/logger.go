package logger

import (
	"context"

	"go.uber.org/zap"
)

type key string

const loggerKey key = "loggerKey"

var global = zap.NewNop().Sugar()

// New builds the process logger; development output everywhere except prod.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch env {
	case "prod":
		l, err = zap.NewProduction()
	default:
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	return l.Sugar(), nil
}

// SetGlobal sets the fallback logger used when the context carries none.
func SetGlobal(l *zap.SugaredLogger) {
	if l != nil {
		global = l
	}
}

// ToContext помещает logger в context
func ToContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext достает logger из context
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return global
}

func Debugf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Infof(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	FromContext(ctx).Errorf(format, args...)
}
