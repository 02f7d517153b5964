package cmd

import (
	"github.com/spf13/cobra"

	"lookhub/internal/app"
)

var posterWorkers int

var posterCmd = &cobra.Command{
	Use:   "poster",
	Short: "Run the fan-out and delivery workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("workers") {
			globalConfig.Poster.Workers = posterWorkers
		}
		ctx, stop := signalContext()
		defer stop()
		return app.RunPoster(ctx, globalConfig)
	},
}

func init() {
	posterCmd.Flags().IntVar(&posterWorkers, "workers", 4, "Number of concurrent delivery workers (overrides config)")
	rootCmd.AddCommand(posterCmd)
}
