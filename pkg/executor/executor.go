package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments.
// Output is returned even when the command fails so callers can log it.
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		return res, fmt.Errorf("command '%s' failed: %w", name, err)
	}

	return res, nil
}
