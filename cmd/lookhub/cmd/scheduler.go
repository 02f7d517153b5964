package cmd

import (
	"github.com/spf13/cobra"

	"lookhub/internal/app"
)

var runNow bool

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the result collector and job producer on the configured schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return app.RunScheduler(ctx, globalConfig, runNow)
	},
}

func init() {
	schedulerCmd.Flags().BoolVar(&runNow, "now", false, "Run one pass immediately before waiting for the schedule")
	rootCmd.AddCommand(schedulerCmd)
}
