package cmd

import (
	"github.com/spf13/cobra"

	"lookhub/internal/app"
)

var withScheduler bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, admin UI and public pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()
		return app.Serve(ctx, globalConfig, withScheduler)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "Also run the producer/collector schedule in this process")
	rootCmd.AddCommand(serveCmd)
}
