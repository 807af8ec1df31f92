package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
)

var (
	listFormat string
	listJSON   bool
)

// listCmd is the saved task list command group.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Manage saved task lists",
	Long:  `Save task files under a name so they can be analyzed later with --list.`,
}

var listSaveCmd = &cobra.Command{
	Use:   "save NAME FILE",
	Short: "Save a task file as a named list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}
		req, err := readRequest(cmd, c, args[1], listFormat)
		if err != nil {
			return err
		}

		result, err := c.SaveTaskListHandler.Handle(cmd.Context(), commands.SaveTaskListCommand{
			Name:  args[0],
			Tasks: req.Tasks,
		})
		if err != nil {
			return err
		}

		verb := "Updated"
		if result.Created {
			verb = "Saved"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s list %q (%d tasks)\n", verb, result.List.Name(), result.List.Len())
		return nil
	},
}

var listShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the tasks of a saved list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}
		dto, err := c.GetTaskListHandler.Handle(cmd.Context(), queries.GetTaskListQuery{Name: args[0]})
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), dto)
	},
}

var listLsCmd = &cobra.Command{
	Use:     "ls",
	Short:   "List saved task lists",
	Aliases: []string{"list"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}
		lists, err := c.ListTaskListsHandler.Handle(cmd.Context())
		if err != nil {
			return err
		}
		if listJSON {
			return writeJSON(cmd.OutOrStdout(), lists)
		}
		ListTable(cmd.OutOrStdout(), lists)
		return nil
	},
}

var listRmCmd = &cobra.Command{
	Use:     "rm NAME",
	Short:   "Delete a saved task list",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{store: true})
		if err != nil {
			return err
		}
		if err := c.DeleteTaskListHandler.Handle(cmd.Context(), commands.DeleteTaskListCommand{Name: args[0]}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %q\n", args[0])
		return nil
	},
}

func init() {
	listSaveCmd.Flags().StringVar(&listFormat, "format", "", "input format (json, yaml, ics); detected when empty")
	listLsCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")

	listCmd.AddCommand(listSaveCmd)
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listLsCmd)
	listCmd.AddCommand(listRmCmd)
	rootCmd.AddCommand(listCmd)
}
