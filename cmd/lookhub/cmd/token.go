package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lookhub/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalConfig.Auth.JWTSecret == "" {
			return errors.New("JWT_SECRET is not configured")
		}
		tokens := auth.NewTokenManager(globalConfig.Auth.JWTSecret,
			time.Duration(globalConfig.Auth.APITokenTTL)*time.Minute,
			time.Duration(globalConfig.Auth.AdminTokenTTL)*time.Minute,
		)
		token, err := tokens.IssueAPIToken()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
