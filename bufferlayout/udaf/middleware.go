package udaf

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps an Instance of the named function.
type Middleware func(name string, next Instance) Instance

// WithLogging wraps instances with call logging.
//
// Example:
//
//	reg := NewRegistry(&RegistryOptions{
//		Middleware: []Middleware{WithLogging(slog.Default())},
//	})
func WithLogging(logger *slog.Logger) Middleware {
	return func(name string, next Instance) Instance {
		return &loggingInstance{next: next, name: name, logger: logger}
	}
}

type loggingInstance struct {
	next   Instance
	name   string
	logger *slog.Logger
	rows   int
}

func (i *loggingInstance) Update(ctx context.Context, args ...any) error {
	start := time.Now()
	err := i.next.Update(ctx, args...)
	i.rows++
	i.log(ctx, "Update", start, err)
	return err
}

func (i *loggingInstance) Result(ctx context.Context) (any, error) {
	start := time.Now()
	res, err := i.next.Result(ctx)
	i.log(ctx, "Result", start, err)
	return res, err
}

func (i *loggingInstance) log(ctx context.Context, op string, start time.Time, err error) {
	duration := time.Since(start)
	if err != nil {
		i.logger.ErrorContext(ctx, "aggregation failed",
			"op", op,
			"function", i.name,
			"rows", i.rows,
			"duration", duration,
			"error", err,
		)
	} else {
		i.logger.DebugContext(ctx, "aggregation",
			"op", op,
			"function", i.name,
			"rows", i.rows,
			"duration", duration,
		)
	}
}
