package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/specialistvlad/rigup/internal/task"
)

// Behavior describes how FakeRunner treats one component.
type Behavior struct {
	// Err is returned by failing attempts.
	Err error
	// FailAttempts is the number of leading attempts that fail with Err.
	// Zero with a non-nil Err fails every attempt.
	FailAttempts int
	// Delay is how long each attempt takes. The attempt returns ctx.Err()
	// if ctx ends first.
	Delay time.Duration
}

// FakeRunner is a task.Runner that records calls and follows a scripted
// Behavior per component id. Unscripted ids succeed immediately.
type FakeRunner struct {
	mu        sync.Mutex
	behaviors map[string]Behavior
	calls     []string
	refs      map[string]task.Ref
	attempts  map[string]int

	// OnRun, when set, is called at the start of every attempt.
	OnRun func(id string, attempt int)
}

var _ task.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a FakeRunner where every component succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		behaviors: make(map[string]Behavior),
		refs:      make(map[string]task.Ref),
		attempts:  make(map[string]int),
	}
}

// Set scripts the behavior for id.
func (r *FakeRunner) Set(id string, b Behavior) *FakeRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.behaviors[id] = b
	return r
}

// Run implements task.Runner.
func (r *FakeRunner) Run(ctx context.Context, id string, ref task.Ref) error {
	r.mu.Lock()
	r.calls = append(r.calls, id)
	r.refs[id] = ref
	r.attempts[id]++
	n := r.attempts[id]
	b := r.behaviors[id]
	onRun := r.OnRun
	r.mu.Unlock()

	if onRun != nil {
		onRun(id, n)
	}

	if b.Delay > 0 {
		t := time.NewTimer(b.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if b.Err != nil && (b.FailAttempts == 0 || n <= b.FailAttempts) {
		return b.Err
	}
	return nil
}

// Calls returns the ids in the order their attempts started, one entry per
// attempt.
func (r *FakeRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Attempts returns how many attempts id received.
func (r *FakeRunner) Attempts(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts[id]
}

// Ref returns the last reference id was run with.
func (r *FakeRunner) Ref(id string) (task.Ref, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.refs[id]
	return ref, ok
}
