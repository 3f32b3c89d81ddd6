package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sourcegraph/conc/panics"
	"github.com/specialistvlad/rigup/internal/ctxlog"
	"github.com/specialistvlad/rigup/internal/handlers"
)

// ErrUnknownHandler is returned for a handler reference with no registered
// handler. Retrying cannot fix it.
var ErrUnknownHandler = errors.New("unknown handler")

// Dispatcher routes handler references to the handler registry and command
// references to Exec.
type Dispatcher struct {
	Exec     Runner
	Handlers *handlers.Handlers
	Stdout   io.Writer
}

// Run implements Runner.
func (d *Dispatcher) Run(ctx context.Context, id string, ref Ref) error {
	if !ref.IsHandler() {
		if d.Exec == nil {
			return fmt.Errorf("no command runner configured for %q", ref.Command)
		}
		return d.Exec.Run(ctx, id, ref)
	}

	h, ok := d.lookup(ref.Handler)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownHandler, ref.Handler)
	}

	done := make(chan error, 1)
	go func() {
		var (
			pc  panics.Catcher
			err error
		)
		pc.Try(func() {
			err = h.Fn(ctx, handlers.Call{ID: id, Args: ref.Args, Stdout: d.stdout()})
		})
		if r := pc.Recovered(); r != nil {
			err = fmt.Errorf("handler %q panicked: %w", ref.Handler, r.AsError())
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// A handler that ignores ctx is abandoned rather than allowed to
		// hold the run past its timeout.
		ctxlog.FromContext(ctx).Warn("Handler did not return after its context ended.", "component", id, "handler", ref.Handler)
		return fmt.Errorf("handler %q interrupted: %w", ref.Handler, ctx.Err())
	}
}

// Check reports whether ref can be dispatched. Commands are not looked up on
// PATH since earlier components may install them.
func (d *Dispatcher) Check(ref Ref) error {
	if !ref.IsHandler() {
		return nil
	}
	if _, ok := d.lookup(ref.Handler); !ok {
		return fmt.Errorf("%w %q", ErrUnknownHandler, ref.Handler)
	}
	return nil
}

func (d *Dispatcher) lookup(name string) (*handlers.RegisteredHandler, bool) {
	if d.Handlers == nil {
		return nil, false
	}
	return d.Handlers.Lookup(name)
}

func (d *Dispatcher) stdout() io.Writer {
	if d.Stdout == nil {
		return io.Discard
	}
	return d.Stdout
}
