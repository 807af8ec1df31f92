package cli

import (
	"github.com/spf13/cobra"
)

var strategiesJSON bool

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the scoring strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadApp(cmd, needs{})
		if err != nil {
			return err
		}

		dto := c.ListStrategiesHandler.Handle(cmd.Context())
		if strategiesJSON {
			return writeJSON(cmd.OutOrStdout(), dto)
		}
		StrategyTable(cmd.OutOrStdout(), dto)
		return nil
	},
}

func init() {
	strategiesCmd.Flags().BoolVar(&strategiesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(strategiesCmd)
}
