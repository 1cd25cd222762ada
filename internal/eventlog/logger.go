package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Logger is the best-effort front of a Sink: Log never fails and never panics.
// Sink errors go to the process logger instead of the request pipeline.
// Appends are detached from cancellation so a caller hanging up does not
// drop the line from a sink that honours the context.
type Logger struct {
	sink     Sink
	log      *zap.Logger
	now      func() time.Time
	failures prometheus.Counter
}

type Option func(*Logger)

func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

func WithFailureCounter(counter prometheus.Counter) Option {
	return func(l *Logger) { l.failures = counter }
}

func NewLogger(sink Sink, log *zap.Logger, opts ...Option) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Logger{sink: sink, log: log, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Logger) Log(ctx context.Context, kind Kind, data any) {
	defer func() {
		if r := recover(); r != nil {
			l.fail(kind, fmt.Errorf("panic in log sink: %v", r))
		}
	}()

	if err := l.sink.Append(context.WithoutCancel(ctx), Event{Time: l.now(), Kind: kind, Data: data}); err != nil {
		l.fail(kind, err)
	}
}

func (l *Logger) fail(kind Kind, err error) {
	if l.failures != nil {
		l.failures.Inc()
	}
	l.log.Warn("event log append failed", zap.String("kind", string(kind)), zap.Error(err))
}
