//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// CommandOutcome is the canned response for one git subcommand.
type CommandOutcome struct {
	Stdout string
	Stderr string
	Err    error
}

// StubCommandRunner implements repositories.CommandRunner with canned
// responses keyed by git subcommand ("clone", "status", "remote get-url",
// ...). Every call is recorded for inspection. Safe for concurrent use.
type StubCommandRunner struct {
	mu sync.Mutex

	// Results maps a subcommand key to its outcome. Unconfigured
	// subcommands succeed with empty output.
	Results map[string]CommandOutcome

	// spy: specs received, in call order
	Calls []repositories.CommandSpec
}

var _ repositories.CommandRunner = (*StubCommandRunner)(nil)

func (r *StubCommandRunner) Run(_ context.Context, spec repositories.CommandSpec) (repositories.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Calls = append(r.Calls, spec)

	outcome := r.Results[commandKey(spec)]
	return repositories.CommandResult{
		Stdout: outcome.Stdout,
		Stderr: outcome.Stderr,
	}, outcome.Err
}

// CommandKeys returns the subcommand key of every recorded call, in order.
func (r *StubCommandRunner) CommandKeys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		keys = append(keys, commandKey(call))
	}
	return keys
}

// commandKey identifies a call by its git subcommand; "remote" commands
// include the remote action so get-url and set-url stay distinguishable.
func commandKey(spec repositories.CommandSpec) string {
	if len(spec.Args) == 0 {
		return spec.Name
	}
	if spec.Args[0] == "remote" && len(spec.Args) > 1 {
		return "remote " + spec.Args[1]
	}
	return spec.Args[0]
}
