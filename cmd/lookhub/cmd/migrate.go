package cmd

import (
	"github.com/spf13/cobra"

	"lookhub/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.OpenDatabase(globalConfig)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err == nil {
			defer sqlDB.Close()
		}
		return app.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
