package controllers

import (
	"context"

	"github.com/pterm/pterm"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	command commands.List
}

// NewListController creates a new ListController.
func NewListController(command commands.List) *ListController {
	return &ListController{command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list <name>",
		Short: "List the repositories of an organization or user",
		Long: `Fetch the repository listing of a GitHub organization or user,
print it, and refresh the local cache file with the result.`,
	}
}

// Execute fetches and prints the repository listing.
func (it *ListController) Execute(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		logger.Error("missing organization or user name, usage: reposync list <name>")
		return
	}

	settings, ok := loadSettings(cmd)
	if !ok {
		return
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	user, _ := cmd.Flags().GetBool("user")
	filter, _ := cmd.Flags().GetString("filter")

	infos, err := it.command.Execute(context.Background(), settings, commands.ListOptions{
		Kind:    entityKind(user),
		Name:    args[0],
		Filter:  filter,
		Verbose: verbose,
	})
	if err != nil {
		logger.Errorf("List failed: %v", err)
		return
	}

	rows := pterm.TableData{{"NAME", "DEFAULT BRANCH", "PRIVATE", "FORK", "ARCHIVED"}}
	for _, info := range infos {
		rows = append(rows, []string{
			info.Name,
			info.DefaultBranch,
			boolMark(info.Private),
			boolMark(info.Fork),
			boolMark(info.Archived),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		logger.Errorf("failed to render table: %v", err)
	}
	pterm.Info.Printf("%d repositories\n", len(infos))
}

// AddFlags adds the list-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("user", false, "Treat the name as a user account instead of an organization")
	cmd.Flags().String("filter", "", "Only list repositories whose name contains this substring")
}

func boolMark(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
