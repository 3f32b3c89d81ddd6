// Package task turns a component's script string into a typed reference and
// runs it. A reference is either an external command with an argument list,
// executed directly without a shell, or the name of a registered Go handler.
package task
