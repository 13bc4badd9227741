package analysis

import (
	"context"
	"errors"
	"time"
)

// runStage runs fn under its own deadline derived from ctx, so a stage is
// cancelled either when the caller goes away or when it exceeds timeout.
// A zero timeout only inherits ctx.
func runStage[T any](ctx context.Context, stage Stage, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	stageCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, err := fn(stageCtx)
	if err != nil {
		var zero T
		se := stageError(stage, err)
		se.timedOut = errors.Is(stageCtx.Err(), context.DeadlineExceeded)
		return zero, se
	}
	return result, nil
}
