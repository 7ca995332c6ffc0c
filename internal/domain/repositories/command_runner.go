package repositories

import (
	"context"
	"time"
)

// CommandSpec describes a single subprocess invocation as an explicit
// argument vector. Commands are never passed through a shell, which rules
// out injection via repository names or URLs containing metacharacters.
type CommandSpec struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// CommandResult carries the captured output of a completed subprocess.
type CommandResult struct {
	Stdout string
	Stderr string
}

// CommandRunner executes subprocesses with per-call timeouts. The production
// implementation spawns real processes; tests use a recording stub.
type CommandRunner interface {
	Run(ctx context.Context, spec CommandSpec) (CommandResult, error)
}
