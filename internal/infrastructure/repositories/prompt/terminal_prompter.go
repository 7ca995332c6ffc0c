package prompt

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// TerminalPrompter asks the operator on the terminal whether mismatched
// remotes should be rewritten.
type TerminalPrompter struct{}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter() repositories.Prompter {
	return &TerminalPrompter{}
}

// ConfirmSwitch lists the mismatched repositories and asks a single yes/no
// question covering all of them. An interrupted or failed prompt counts as
// cancelling, which callers treat as keeping the current remotes.
func (it *TerminalPrompter) ConfirmSwitch(
	ctx context.Context,
	mismatches []entities.ProtocolMismatch,
	desired entities.Protocol,
) (repositories.PromptChoice, error) {
	if ctx.Err() != nil {
		return repositories.ChoiceCancelled, nil
	}

	pterm.DefaultSection.Printf("%d repositories use a different protocol than %s", len(mismatches), desired)
	for _, mismatch := range mismatches {
		pterm.Printf("  %s (%s)\n", mismatch.RepoName, mismatch.CurrentURL)
	}

	confirmed, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(fmt.Sprintf("Switch these remotes to %s?", desired)).
		Show()
	if err != nil {
		return repositories.ChoiceCancelled, nil
	}
	if confirmed {
		return repositories.ChoiceSwitch, nil
	}
	return repositories.ChoiceKeep, nil
}
