package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lookhub/internal/config"
	"lookhub/internal/logger"
)

// cfgFile holds the path given with --config
var cfgFile string

// globalConfig is loaded once before any command runs
var globalConfig *config.Config

var rootCmd = &cobra.Command{
	Use:           "lookhub",
	Short:         "LookHub catalog service and social media poster",
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: loadGlobalConfig,
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default $CONFIG_PATH or config/config.yaml)")
}

func loadGlobalConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		globalConfig, err = config.LoadFrom(cfgFile)
	} else {
		globalConfig, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}

	logger.Init(globalConfig.Server.Env)
	logger.Debug("Config loaded", "env", globalConfig.Server.Env, "command", cmd.Name())
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
