package controllers

import (
	"context"

	"github.com/pterm/pterm"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ProtocolController handles the "protocol" subcommand.
type ProtocolController struct {
	command commands.Protocol
}

// NewProtocolController creates a new ProtocolController.
func NewProtocolController(command commands.Protocol) *ProtocolController {
	return &ProtocolController{command: command}
}

// GetBind returns the Cobra command metadata for the protocol controller.
func (it *ProtocolController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "protocol <name>",
		Short: "Reconcile the remote protocol of already-cloned repositories",
		Long: `Check the origin remote of every locally cloned repository of a
GitHub organization or user against the desired protocol (https or
ssh) and optionally rewrite the mismatched ones. Repositories are
not synchronized.`,
	}
}

// Execute runs one protocol reconciliation pass.
func (it *ProtocolController) Execute(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		logger.Error("missing organization or user name, usage: reposync protocol <name>")
		return
	}

	settings, ok := loadSettings(cmd)
	if !ok {
		return
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	user, _ := cmd.Flags().GetBool("user")
	protocol, _ := cmd.Flags().GetString("protocol")
	cached, _ := cmd.Flags().GetBool("cached")
	onMismatch, _ := cmd.Flags().GetString("on-mismatch")

	parsed, ok := parseProtocolFlag(protocol)
	if !ok {
		return
	}

	outcome, err := it.command.Execute(context.Background(), settings, commands.ProtocolOptions{
		Kind:    entityKind(user),
		Name:    args[0],
		Desired: parsed,
		DryRun:  dryRun,
		Verbose: verbose,
		Cached:  cached,
		Policy:  commands.SwitchPolicy(onMismatch),
	})
	if err != nil {
		logger.Errorf("Protocol check failed: %v", err)
		return
	}

	reportProtocolOutcome(outcome)
}

// AddFlags adds the protocol-specific flags to the given Cobra command.
func (it *ProtocolController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("user", false, "Treat the name as a user account instead of an organization")
	cmd.Flags().StringP("protocol", "p", "", "Desired protocol: https or ssh (default from config)")
	cmd.Flags().Bool("cached", false, "Use the cached repository listing instead of querying the API")
	cmd.Flags().String("on-mismatch", "ask", "What to do with mismatched remotes: ask, switch or keep")
}

func reportProtocolOutcome(outcome commands.ProtocolOutcome) {
	if len(outcome.Mismatches) == 0 {
		pterm.Success.Println("All remotes already use the desired protocol")
		return
	}

	if outcome.DryRun {
		pterm.Info.Printf("%d remote(s) would be switched\n", len(outcome.Mismatches))
		return
	}

	pterm.Info.Printf(
		"%d mismatch(es) found, %d remote(s) switched\n",
		len(outcome.Mismatches), len(outcome.Switched),
	)
	for _, repoErr := range outcome.Errors {
		pterm.Error.Printf("  %s: %v\n", repoErr.RepoName, repoErr.Err)
	}
}
