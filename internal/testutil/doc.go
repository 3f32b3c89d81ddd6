// Package testutil holds fakes and helpers shared by the package tests and
// the integration tests.
package testutil
