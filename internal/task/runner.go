package task

import "context"

// Runner executes one task reference and blocks until it finishes or ctx is
// done. A nil error means the task succeeded.
type Runner interface {
	Run(ctx context.Context, id string, ref Ref) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, id string, ref Ref) error

// Run implements Runner.
func (f RunnerFunc) Run(ctx context.Context, id string, ref Ref) error { return f(ctx, id, ref) }
