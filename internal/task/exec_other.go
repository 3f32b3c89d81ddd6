//go:build !unix

package task

import (
	"os/exec"
	"time"
)

// Process groups are unix only; elsewhere cancellation kills the direct child.
func setProcessGroup(*exec.Cmd) {}

func waitProcessGroup(int, time.Duration) bool { return true }
