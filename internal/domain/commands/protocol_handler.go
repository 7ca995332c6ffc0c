package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
)

// SwitchPolicy controls how detected protocol mismatches are resolved.
type SwitchPolicy string

const (
	// PolicyAsk presents the mismatches through the Prompter port.
	PolicyAsk SwitchPolicy = "ask"
	// PolicySwitch rewrites all mismatched remotes without prompting.
	PolicySwitch SwitchPolicy = "switch"
	// PolicyKeep leaves all remotes untouched without prompting.
	PolicyKeep SwitchPolicy = "keep"
)

// ResolveOptions configures one protocol reconciliation pass.
type ResolveOptions struct {
	DryRun bool
	Policy SwitchPolicy
}

// ProtocolOutcome reports what a reconciliation pass found and did.
type ProtocolOutcome struct {
	Mismatches []entities.ProtocolMismatch
	Switched   []string
	Errors     []entities.RepoError
	DryRun     bool
}

// ProtocolHandler scans a batch for remote-URL transport mismatches against
// the requested protocol and resolves them: auto-fix, prompt, or dry-run
// report.
type ProtocolHandler struct {
	gitRepo  repositories.GitRepository
	prompter repositories.Prompter
}

// NewProtocolHandler creates a new ProtocolHandler.
func NewProtocolHandler(gitRepo repositories.GitRepository, prompter repositories.Prompter) *ProtocolHandler {
	return &ProtocolHandler{gitRepo: gitRepo, prompter: prompter}
}

// Scan detects the configured transport of every locally existing repository
// in the batch and collects those that disagree with desired. Repositories
// whose transport cannot be classified are not mismatches.
func (it *ProtocolHandler) Scan(ctx context.Context, batch entities.RepositoryBatch, desired entities.Protocol) []entities.ProtocolMismatch {
	var mismatches []entities.ProtocolMismatch
	for _, repo := range batch.Repositories {
		if !repo.ExistsLocally() {
			continue
		}

		detected, currentURL := it.gitRepo.DetectProtocol(ctx, repo.LocalPath)
		if detected == entities.ProtocolUnknown || detected == desired {
			continue
		}

		mismatches = append(mismatches, entities.ProtocolMismatch{
			RepoName:   repo.Info.Name,
			CurrentURL: currentURL,
		})
	}
	return mismatches
}

// Resolve runs Scan and acts on the result. With no mismatches it is a
// no-op. In dry-run mode mismatches are reported but never rewritten. An
// interrupt during the prompt counts as declining; nothing is changed.
// Rewrite failures are collected per repository and never stop the pass.
func (it *ProtocolHandler) Resolve(ctx context.Context, batch entities.RepositoryBatch, desired entities.Protocol, opts ResolveOptions) (ProtocolOutcome, error) {
	mismatches := it.Scan(ctx, batch, desired)
	outcome := ProtocolOutcome{Mismatches: mismatches, DryRun: opts.DryRun}

	if len(mismatches) == 0 {
		logger.Debugf("All remotes already use %s, no action needed", desired)
		return outcome, nil
	}

	if opts.DryRun {
		for _, mismatch := range mismatches {
			logger.Infof("[dry-run] would switch %q (%s) to %s", mismatch.RepoName, mismatch.CurrentURL, desired)
		}
		return outcome, nil
	}

	choice, err := it.decide(ctx, mismatches, desired, opts.Policy)
	if err != nil {
		return outcome, err
	}
	if choice != repositories.ChoiceSwitch {
		logger.Infof("Keeping %d remote(s) untouched", len(mismatches))
		return outcome, nil
	}

	byName := repositoriesByName(batch)
	for _, mismatch := range mismatches {
		repo, ok := byName[mismatch.RepoName]
		if !ok {
			continue
		}

		newURL := repo.Info.URLFor(desired)
		if setErr := it.gitRepo.SetRemoteURL(ctx, repo.LocalPath, newURL); setErr != nil {
			logger.Errorf("Failed to switch remote of %q: %v", mismatch.RepoName, setErr)
			outcome.Errors = append(outcome.Errors, entities.RepoError{RepoName: mismatch.RepoName, Err: setErr})
			continue
		}

		logger.Infof("Switched %q to %s", mismatch.RepoName, newURL)
		outcome.Switched = append(outcome.Switched, mismatch.RepoName)
	}

	return outcome, nil
}

// decide maps the configured policy to a prompt choice, asking the injected
// prompter only when the policy requires it.
func (it *ProtocolHandler) decide(ctx context.Context, mismatches []entities.ProtocolMismatch, desired entities.Protocol, policy SwitchPolicy) (repositories.PromptChoice, error) {
	switch policy {
	case PolicySwitch:
		return repositories.ChoiceSwitch, nil
	case PolicyKeep:
		return repositories.ChoiceKeep, nil
	default:
		return it.prompter.ConfirmSwitch(ctx, mismatches, desired)
	}
}

func repositoriesByName(batch entities.RepositoryBatch) map[string]entities.Repository {
	byName := make(map[string]entities.Repository, len(batch.Repositories))
	for _, repo := range batch.Repositories {
		byName[repo.Info.Name] = repo
	}
	return byName
}
