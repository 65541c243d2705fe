package tunnelblick

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// commandTimeout bounds every osascript/pgrep/open invocation.
const commandTimeout = 30 * time.Second

// runner executes the local commands the adapters depend on.
// Tests substitute a fake.
type runner interface {
	// run executes name with args and returns trimmed stdout.
	// stderr is folded into the returned error.
	run(ctx context.Context, name string, args ...string) (string, error)

	// processExists reports whether a process with the exact name is
	// running.
	processExists(ctx context.Context, name string) (bool, error)
}

// execRunner runs commands through os/exec with a bounded timeout.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			return "", fmt.Errorf("%s: %w: %s", name, err, stderr)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}

	return strings.TrimSpace(string(out)), nil
}

func (r execRunner) processExists(ctx context.Context, name string) (bool, error) {
	_, err := r.run(ctx, "pgrep", "-x", name)
	if err == nil {
		return true, nil
	}

	// pgrep exits 1 when no process matches.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}

	return false, err
}
