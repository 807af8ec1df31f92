package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/watcher"
)

var (
	watchStrategy string
	watchToday    string
	watchJSON     bool
	watchFormat   string
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Re-rank a task file whenever it changes",
	Long: `Analyze FILE, then analyze it again every time it is saved. Stop with
Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{today: watchToday})
		if err != nil {
			return err
		}
		path := args[0]
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		analyze := func() {
			req, err := readRequest(cmd, c, path, watchFormat)
			if err == nil {
				strategy := strategyFlag(cmd, watchStrategy)
				if strategy == nil {
					strategy = req.Strategy
				}
				var result *commands.AnalyzeTasksResult
				result, err = c.AnalyzeTasksHandler.Handle(ctx, commands.AnalyzeTasksCommand{
					Tasks:    req.Tasks,
					Strategy: strategy,
				})
				if err == nil {
					if watchJSON {
						err = writeJSON(out, result.Ranking)
					} else {
						fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s  %s", path, time.Now().Format("15:04:05"))))
						RankingTable(out, result.Ranking)
						fmt.Fprintln(out)
					}
				}
			}
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("Error: "+err.Error()))
			}
		}

		w, err := watcher.New(path, analyze)
		if err != nil {
			return err
		}
		defer w.Close()

		analyze()
		w.Run(ctx, func(err error) {
			getLogger().WarnContext(ctx, "watch error", "path", path, "error", err)
		})
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchStrategy, "strategy", "s", "", "scoring strategy (smart, fastest, impact, deadline)")
	watchCmd.Flags().StringVar(&watchToday, "today", "", "score as of this date (YYYY-MM-DD)")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "output as JSON")
	watchCmd.Flags().StringVar(&watchFormat, "format", "", "input format (json, yaml, ics); detected when empty")
	rootCmd.AddCommand(watchCmd)
}
