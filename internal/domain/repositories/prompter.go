package repositories

import (
	"context"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// PromptChoice is the decision returned by a protocol-switch prompt.
type PromptChoice int

const (
	// ChoiceKeep leaves every remote untouched.
	ChoiceKeep PromptChoice = iota
	// ChoiceSwitch rewrites every mismatched remote to the desired transport.
	ChoiceSwitch
	// ChoiceCancelled is an interrupt during the prompt; it is treated as
	// keep, never as a crash.
	ChoiceCancelled
)

// Prompter abstracts the interactive yes/no protocol-switch prompt so the
// decision logic stays testable and headless callers can supply a fixed
// policy instead of terminal input.
type Prompter interface {
	ConfirmSwitch(ctx context.Context, mismatches []entities.ProtocolMismatch, desired entities.Protocol) (PromptChoice, error)
}
