//go:build unix

package task

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestExecRunner_Success(t *testing.T) {
	var out bytes.Buffer
	r := NewExecRunner(&out, &out)

	err := r.Run(context.Background(), "echo", Ref{Command: "echo", Args: []string{"hello", "world"}})

	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out.String())
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	r := NewExecRunner(nil, nil)

	err := r.Run(context.Background(), "false", Ref{Command: "false"})

	var exitErr *ExitCodeError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestExecRunner_RelativeCommandUsesDir(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	script := "#!/bin/sh\necho \"from script $1\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "install.sh"), []byte(script), 0o755))
	var out bytes.Buffer
	r := NewExecRunner(&out, &out)

	// --- Act ---
	err := r.Run(context.Background(), "local", Ref{Command: "./install.sh", Args: []string{"x"}, Dir: dir})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "from script x\n", out.String())
}

func TestExecRunner_Timeout(t *testing.T) {
	r := NewExecRunner(nil, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := r.Run(ctx, "sleepy", Ref{Command: "sleep", Args: []string{"5"}})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunner_TimeoutKillsDescendants(t *testing.T) {
	// --- Arrange ---
	pidFile := filepath.Join(t.TempDir(), "sleeper.pid")
	r := NewExecRunner(nil, nil)
	r.WaitDelay = 2 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	script := `sleep 30 & echo $! > "$1"; wait`

	// --- Act ---
	err := r.Run(ctx, "installer", Ref{Command: "sh", Args: []string{"-c", script, "sh", pidFile}})

	// --- Assert ---
	require.ErrorIs(t, err, context.DeadlineExceeded)
	pid := readPID(t, pidFile)
	assert.True(t, processGone(pid), "background process %d outlived the timeout", pid)

	// The next command only starts once Run has returned, so nothing from
	// the killed group may still be around at this point.
	var out bytes.Buffer
	next := NewExecRunner(&out, &out)
	require.NoError(t, next.Run(context.Background(), "next", Ref{Command: "echo", Args: []string{"next"}}))
	assert.True(t, processGone(pid))
}

func TestExecRunner_CommandGetsOwnProcessGroup(t *testing.T) {
	// --- Arrange ---
	pidFile := filepath.Join(t.TempDir(), "child.pid")
	r := NewExecRunner(nil, nil)
	r.WaitDelay = 2 * time.Second
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)

	// --- Act ---
	go func() {
		done <- r.Run(ctx, "group", Ref{Command: "sh", Args: []string{"-c", `echo $$ > "$1"; sleep 30`, "sh", pidFile}})
	}()
	require.Eventually(t, func() bool {
		raw, err := os.ReadFile(pidFile)
		return err == nil && strings.HasSuffix(string(raw), "\n")
	}, 5*time.Second, 10*time.Millisecond)
	pid := readPID(t, pidFile)
	pgid, pgidErr := unix.Getpgid(pid)
	cancel()

	// --- Assert ---
	require.NoError(t, pgidErr)
	assert.Equal(t, pid, pgid, "command must lead its own process group")
	assert.NotEqual(t, unix.Getpgrp(), pgid)
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled command did not return")
	}
	assert.True(t, processGone(pid))
}

func readPID(t *testing.T, path string) int {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	require.NoError(t, err)
	return pid
}

// processGone reports whether pid has exited. A zombie waiting for init to
// reap it counts as gone.
func processGone(pid int) bool {
	if errors.Is(unix.Kill(pid, 0), unix.ESRCH) {
		return true
	}
	stat, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if errors.Is(err, os.ErrNotExist) {
		return unix.Kill(pid, 0) != nil
	}
	if err != nil {
		return false
	}
	fields := strings.Fields(string(stat[bytes.LastIndexByte(stat, ')')+1:]))
	return len(fields) > 0 && fields[0] == "Z"
}

func TestExecRunner_MissingCommand(t *testing.T) {
	r := NewExecRunner(nil, nil)

	err := r.Run(context.Background(), "ghost", Ref{Command: "definitely-not-a-real-binary-rigup"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run command")
}

func TestExecRunner_RejectsHandler(t *testing.T) {
	err := NewExecRunner(nil, nil).Run(context.Background(), "x", Ref{Handler: "print"})
	require.ErrorIs(t, err, ErrInvalidRef)
}
