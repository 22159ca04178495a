package rembg

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/chaos-io/cutout/internal/logging"
)

// Execution is what a finished process left behind. Output holds stdout and
// stderr merged, in the order they were written.
type Execution struct {
	Output   []byte
	ExitCode int
	Elapsed  time.Duration
}

// Runner starts an executable and waits for it.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Execution, error)
}

const waitDelay = 2 * time.Second

type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run always returns an Execution with Elapsed set. The error is non-nil when
// the process could not be started or ctx ended first. A non-zero exit is
// reported through ExitCode only.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Execution, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Children that inherit the output pipe must not hold Wait open after a kill.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	out, err := cmd.CombinedOutput()
	res := &Execution{Output: out, Elapsed: time.Since(start), ExitCode: cmd.ProcessState.ExitCode()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, logging.NewOperationError("rembg.run", "", ctxErr)
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return res, logging.NewOperationError("rembg.run", "", err)
	}
	return res, nil
}
