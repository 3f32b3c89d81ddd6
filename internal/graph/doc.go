// Package graph holds the component graph that drives an installation run.
//
// A Graph is built once from a list of Components (see New) and is read-only
// afterwards. It keeps components in declaration order and a reverse map of
// dependents, so that every query over it is deterministic.
//
// # Resolution
//
// Resolve reduces the graph to an ordered Plan for a requested subset of ids.
// The traversal is an iterative depth-first search with an explicit stack and
// a three-state mark per id:
//
//	unvisited ──push──▶ in-progress ──all requires done──▶ done
//
// Meeting an in-progress id again means the requires chain loops back on
// itself, which is reported as a CycleError. Children are visited in the order
// they appear in the component's requires list, and requested ids in the
// order they were given, so a fixed graph and selection always produce the
// same plan.
//
// # Errors
//
// ConfigParseError, UnknownComponentError and CycleError are fatal. They are
// raised before any task runs and can be matched with errors.Is against
// ErrConfigParse, ErrUnknownComponent and ErrCycle.
package graph
