package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Execer runs one command line synchronously and reports its exit status.
// The dispatcher and the local runner both execute through this seam so
// tests can substitute a fake.
type Execer interface {
	// Run executes argv[0] with argv[1:] in dir (or the current directory
	// when dir is empty), wiring the given stdout/stderr. It blocks until
	// the process exits and returns the exit code.
	Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (int, error)
}

// NewExecer returns the os/exec backed Execer.
func NewExecer() Execer {
	return osExecer{}
}

type osExecer struct{}

func (osExecer) Run(ctx context.Context, dir string, argv []string, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// A nonzero exit is a result, not a dispatch failure.
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("executing %q: %w", argv[0], err)
}
