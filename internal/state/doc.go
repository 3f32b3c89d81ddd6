// Package state persists which components finished successfully in the
// current installation run so that an interrupted run can be resumed.
//
// The file store keeps one JSON record per state file. Every MarkDone
// rewrites the record with write-to-temp, fsync, rename and a directory fsync,
// so after a crash the file holds either the previous record or the new one.
// An advisory lock on "<path>.lock" keeps a second process from using the
// same state file at the same time.
package state
