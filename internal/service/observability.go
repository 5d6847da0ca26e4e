package service

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewSlogUseCaseObserver reports use-case events through logger. Successful
// calls log at debug level, failures at error level.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	}
	// Fields are sorted so log lines diff cleanly.
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}
	if event.Err != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "service_use_case", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
