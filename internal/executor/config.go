package executor

import (
	"errors"
	"time"
)

// Config holds the knobs that used to be separate installer variants.
type Config struct {
	// Timeout bounds a single attempt. A component's own timeout wins.
	Timeout time.Duration
	// MaxAttempts is the total number of attempts per component, at least 1.
	MaxAttempts int
	// BackoffBase is the wait after the first failed attempt. It doubles
	// after every further failure, up to BackoffMax.
	BackoffBase time.Duration
	BackoffMax  time.Duration
	// Resume treats ids already in the state store as done.
	Resume bool
	// DryRun walks the plan without invoking tasks or touching the store.
	DryRun bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Timeout:     10 * time.Minute,
		MaxAttempts: 1,
		BackoffBase: 2 * time.Second,
		BackoffMax:  time.Minute,
	}
}

// Validate checks the config for values the executor cannot work with.
func (c Config) Validate() error {
	var errs []error
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.MaxAttempts < 1 {
		errs = append(errs, errors.New("max attempts must be at least 1"))
	}
	if c.BackoffBase < 0 || c.BackoffMax < 0 {
		errs = append(errs, errors.New("backoff must not be negative"))
	}
	if c.BackoffMax < c.BackoffBase {
		errs = append(errs, errors.New("max backoff must not be below the initial backoff"))
	}
	return errors.Join(errs...)
}
