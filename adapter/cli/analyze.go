package cli

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
)

var (
	analyzeStrategy string
	analyzeToday    string
	analyzeJSON     bool
	analyzeList     string
	analyzeFormat   string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [FILE|-]",
	Short: "Score and rank tasks",
	Long: `Score every task, sort by descending priority and report circular
dependencies.

Input is a JSON, YAML or iCalendar file, standard input ("-" or no
argument), or a saved list (--list).

Examples:
  taskrank analyze tasks.json
  taskrank analyze tasks.yaml --strategy deadline
  cat tasks.json | taskrank analyze - --json
  taskrank analyze --list weekly --today 2025-03-10`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyzeList != "" && len(args) > 0 {
			return errors.New("pass either a task file or --list, not both")
		}

		c, err := loadApp(cmd, needs{store: analyzeList != "", today: analyzeToday})
		if err != nil {
			return err
		}

		command := commands.AnalyzeTasksCommand{
			Strategy: strategyFlag(cmd, analyzeStrategy),
			ListName: analyzeList,
		}
		if analyzeList == "" {
			req, err := readRequest(cmd, c, pathArg(args), analyzeFormat)
			if err != nil {
				return err
			}
			command.Tasks = req.Tasks
			if command.Strategy == nil {
				command.Strategy = req.Strategy
			}
		}

		result, err := c.AnalyzeTasksHandler.Handle(cmd.Context(), command)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if analyzeJSON {
			return writeJSON(out, result.Ranking)
		}
		RankingTable(out, result.Ranking)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", "", "scoring strategy (smart, fastest, impact, deadline)")
	analyzeCmd.Flags().StringVar(&analyzeToday, "today", "", "score as of this date (YYYY-MM-DD)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output as JSON")
	analyzeCmd.Flags().StringVar(&analyzeList, "list", "", "analyze a saved task list")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "input format (json, yaml, ics); detected when empty")
	rootCmd.AddCommand(analyzeCmd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// suggestionsJSON is the JSON shape of the suggest command.
type suggestionsJSON struct {
	Suggestions  []services.Suggestion `json:"suggestions"`
	StrategyUsed string                `json:"strategy_used"`
}
