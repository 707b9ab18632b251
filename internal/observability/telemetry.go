package observability

import (
	"context"
	"errors"
	"fmt"
)

// Setup initialises tracing, metrics and log export when enabled and
// returns one shutdown func that flushes all of them. With telemetry
// disabled the global OTel providers stay no-op and only stdout logging runs.
func Setup(ctx context.Context, enabled bool, serviceName string) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if !enabled {
		return shutdown, nil
	}

	steps := []struct {
		name string
		init func(context.Context, string) (func(context.Context) error, error)
	}{
		{"tracing", InitTracing},
		{"metrics", InitMetrics},
		{"logging", InitLogging},
	}

	for _, step := range steps {
		fn, err := step.init(ctx, serviceName)
		if err != nil {
			_ = shutdown(ctx)
			return nil, fmt.Errorf("init %s: %w", step.name, err)
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
