package gridsheet

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	logMu      sync.RWMutex
	baseLogger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetLogger заменяет логгер пакета.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	baseLogger = l
	logMu.Unlock()
}

// Logger возвращает текущий логгер пакета.
func Logger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return baseLogger
}

func logger() *zerolog.Logger {
	l := Logger()
	return &l
}

// WithLogger кладёт в контекст логгер пакета с дополнительными полями.
func WithLogger(ctx context.Context, fields map[string]interface{}) context.Context {
	l := Logger().With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// loggerFrom достаёт логгер из контекста, иначе отдаёт логгер пакета.
func loggerFrom(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		l := zerolog.Ctx(ctx)
		// zerolog.Ctx отдаёт выключенный логгер, если в контексте ничего нет
		if l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return logger()
}
