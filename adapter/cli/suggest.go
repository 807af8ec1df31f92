package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
)

var (
	suggestStrategy string
	suggestToday    string
	suggestJSON     bool
	suggestList     string
	suggestFormat   string
	suggestLimit    int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [FILE|-]",
	Short: "Recommend what to work on next",
	Long: `Rank the tasks and print the top ones with the reason each was picked.

Examples:
  taskrank suggest tasks.json
  taskrank suggest tasks.json -n 5 --strategy impact
  taskrank suggest --list weekly`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if suggestList != "" && len(args) > 0 {
			return errors.New("pass either a task file or --list, not both")
		}
		if suggestLimit < 0 {
			return errors.New("--limit must not be negative")
		}

		c, err := loadApp(cmd, needs{store: suggestList != "", today: suggestToday})
		if err != nil {
			return err
		}

		command := commands.SuggestTasksCommand{
			Strategy: strategyFlag(cmd, suggestStrategy),
			Limit:    suggestLimit,
			ListName: suggestList,
		}
		if suggestList == "" {
			req, err := readRequest(cmd, c, pathArg(args), suggestFormat)
			if err != nil {
				return err
			}
			command.Tasks = req.Tasks
			if command.Strategy == nil {
				command.Strategy = req.Strategy
			}
			if command.Limit == 0 {
				command.Limit = req.Limit
			}
		}

		result, err := c.SuggestTasksHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if suggestJSON {
			return writeJSON(out, suggestionsJSON{Suggestions: result.Suggestions, StrategyUsed: result.StrategyUsed})
		}
		SuggestionList(out, result.Suggestions)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestStrategy, "strategy", "s", "", "scoring strategy (smart, fastest, impact, deadline)")
	suggestCmd.Flags().StringVar(&suggestToday, "today", "", "score as of this date (YYYY-MM-DD)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output as JSON")
	suggestCmd.Flags().StringVar(&suggestList, "list", "", "suggest from a saved task list")
	suggestCmd.Flags().StringVar(&suggestFormat, "format", "", "input format (json, yaml, ics); detected when empty")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 0, "number of suggestions (default from config)")
	rootCmd.AddCommand(suggestCmd)
}
