package controllers

import (
	"context"

	"github.com/pterm/pterm"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// SyncController handles the "sync" subcommand (batch mode).
type SyncController struct {
	command commands.Sync
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync) *SyncController {
	return &SyncController{command: command}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync <name>",
		Short: "Clone or pull every repository of an organization or user",
		Long: `Fetch the repository listing of a GitHub organization or user
and bring the local working copies up to date.

Repositories that do not exist locally are cloned; existing ones
are pulled on their default branch. Repositories with uncommitted
changes or without any commits are left untouched. Remote URLs
using a different protocol than requested can be switched before
syncing.`,
	}
}

// Execute runs one batch synchronization.
func (it *SyncController) Execute(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		logger.Error("missing organization or user name, usage: reposync sync <name>")
		return
	}

	settings, ok := loadSettings(cmd)
	if !ok {
		return
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	user, _ := cmd.Flags().GetBool("user")
	filter, _ := cmd.Flags().GetString("filter")
	protocol, _ := cmd.Flags().GetString("protocol")
	workers, _ := cmd.Flags().GetInt("workers")
	cached, _ := cmd.Flags().GetBool("cached")
	onMismatch, _ := cmd.Flags().GetString("on-mismatch")

	parsed, ok := parseProtocolFlag(protocol)
	if !ok {
		return
	}

	result, err := it.command.Execute(context.Background(), settings, commands.SyncOptions{
		Kind:     entityKind(user),
		Name:     args[0],
		Filter:   filter,
		Protocol: parsed,
		Workers:  workers,
		DryRun:   dryRun,
		Verbose:  verbose,
		Cached:   cached,
		Policy:   commands.SwitchPolicy(onMismatch),
	})
	if err != nil {
		logger.Errorf("Sync failed: %v", err)
		return
	}

	reportBatchResult(result)
}

// AddFlags adds the sync-specific flags to the given Cobra command.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("user", false, "Treat the name as a user account instead of an organization")
	cmd.Flags().String("filter", "", "Only sync repositories whose name contains this substring")
	cmd.Flags().StringP("protocol", "p", "", "Clone protocol: https or ssh (default from config)")
	cmd.Flags().IntP("workers", "w", 0, "Number of concurrent workers (default from config)")
	cmd.Flags().Bool("cached", false, "Use the cached repository listing instead of querying the API")
	cmd.Flags().String("on-mismatch", "ask", "What to do with mismatched remote protocols: ask, switch or keep")
}

func reportBatchResult(result entities.BatchResult) {
	if result.Failed > 0 {
		pterm.Warning.Printf(
			"Synced %d repositories: %d processed, %d failed, %d skipped\n",
			result.Total(), result.Processed, result.Failed, result.Skipped,
		)
		for _, repoErr := range result.Errors {
			pterm.Error.Printf("  %s: %v\n", repoErr.RepoName, repoErr.Err)
		}
		return
	}

	pterm.Success.Printf(
		"Synced %d repositories: %d processed, %d skipped\n",
		result.Total(), result.Processed, result.Skipped,
	)
}
