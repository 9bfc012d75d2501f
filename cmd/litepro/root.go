package main

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/litepro/internal/infrastructure/config"
	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/GriffinCanCode/litepro/internal/server"
	"github.com/GriffinCanCode/litepro/internal/transport/com"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "litepro",
	Short: "Drive the HWP word processor to type exam content",
	Long: `litepro attaches to a running HWP word processor and types text, equations,
boxes, tables and images at the cursor. Configuration comes from HWP_*,
LOG_* and server environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("templates"); dir != "" {
			cfg.Automation.TemplateDir = dir
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger, err = server.NewLogger(cfg.Logging)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("templates", "", "Template directory (overrides HWP_TEMPLATE_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides LOG_LEVEL)")
}

// buildApp wires the application to the live word processor
func buildApp() (*server.App, error) {
	return server.Build(cfg, com.NewAttacher(logger), logger)
}
