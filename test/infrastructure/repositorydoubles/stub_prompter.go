//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// StubPrompter implements repositories.Prompter with a fixed choice.
type StubPrompter struct {
	Choice repositories.PromptChoice
	Err    error

	// spy: prompts received
	Prompts [][]entities.ProtocolMismatch
}

var _ repositories.Prompter = (*StubPrompter)(nil)

func (p *StubPrompter) ConfirmSwitch(
	_ context.Context,
	mismatches []entities.ProtocolMismatch,
	_ entities.Protocol,
) (repositories.PromptChoice, error) {
	p.Prompts = append(p.Prompts, mismatches)
	return p.Choice, p.Err
}
