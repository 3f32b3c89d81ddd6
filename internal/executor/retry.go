package executor

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/task"
)

// retry runs ref until it succeeds, a non-retryable error occurs or the
// attempts are used up. It returns the number of attempts made and the last
// attempt's error.
//
// Attempts run on a context detached from ctx so that an interrupt does not
// kill a task half way; only the per-attempt timeout does. Waiting between
// attempts does honor ctx.
func (e *Executor) retry(ctx context.Context, id string, ref task.Ref, timeout time.Duration) (int, error) {
	logger := ctxlog.FromContext(ctx)
	taskCtx := context.WithoutCancel(ctx)

	var (
		attempts int
		lastErr  error
	)
	operation := func() error {
		attempts++
		err := e.attempt(taskCtx, id, ref, timeout, attempts)
		if err == nil {
			return nil
		}
		lastErr = err
		if errors.Is(err, task.ErrUnknownHandler) || errors.Is(err, task.ErrInvalidRef) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("🔁 Attempt failed, retrying",
			"attempt", attempts,
			"max_attempts", e.cfg.MaxAttempts,
			"wait", wait,
			"error", err,
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(e.policy(), ctx), notify); err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return attempts, lastErr
	}
	return attempts, nil
}

// attempt makes a single bounded call to the runner and classifies failure.
func (e *Executor) attempt(ctx context.Context, id string, ref task.Ref, timeout time.Duration, n int) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctxlog.FromContext(ctx).Debug("Attempt started.", "attempt", n, "timeout", timeout, "task", ref.String())
	err := e.runner.Run(attemptCtx, id, ref)
	if err == nil {
		return nil
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &TaskTimeoutError{ID: id, Attempt: n, Timeout: timeout}
	}
	return &TaskExecutionError{ID: id, Attempt: n, Err: err}
}

// policy is exponential backoff without jitter, capped at BackoffMax, for at
// most MaxAttempts-1 retries.
func (e *Executor) policy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.cfg.BackoffBase
	b.MaxInterval = e.cfg.BackoffMax
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	retries := e.cfg.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithMaxRetries(b, uint64(retries))
}
