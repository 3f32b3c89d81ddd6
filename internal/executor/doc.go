// Package executor drives a resolved plan to completion, one component at a
// time.
//
// Every component moves through
//
//	PENDING -> RUNNING -> SUCCEEDED | FAILED
//
// or straight from PENDING to SKIPPED when something it requires ended FAILED
// or SKIPPED. A failure never aborts the run: the failed component's
// dependents are skipped and independent branches carry on. Only a state
// store I/O error or an interrupt stops the loop early.
//
// Each attempt runs under its own timeout. Failed attempts are retried with
// exponential backoff up to Config.MaxAttempts. Interrupting the run's
// context stops the loop before the next component starts; the component in
// flight is left to finish or time out.
package executor
