package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// ExecCommandRunner runs subprocesses through os/exec with argument vectors
// only. Nothing ever passes through a shell, so repository names cannot be
// interpreted as shell syntax.
type ExecCommandRunner struct{}

// NewExecCommandRunner creates a new ExecCommandRunner.
func NewExecCommandRunner() repositories.CommandRunner {
	return &ExecCommandRunner{}
}

// Run executes the spec and captures both output streams. The spec timeout
// bounds the subprocess through the context; a timed-out process is killed.
func (it *ExecCommandRunner) Run(ctx context.Context, spec repositories.CommandSpec) (repositories.CommandResult, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	logger.Debugf("Running %s %s (dir=%s)", spec.Name, strings.Join(spec.Args, " "), spec.Dir)

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := repositories.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", spec.Timeout, ctx.Err())
		}
		return result, &entities.GitOperationError{
			Command: spec.Name + " " + strings.Join(spec.Args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return result, nil
}
