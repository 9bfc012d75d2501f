package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/litepro/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the automation HTTP API",
	Long:  `Serves tool execution, script runs, health and Prometheus metrics until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Server.Port = port
		}
		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Server.Host = host
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(app).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().String("host", "", "Host to bind (overrides HOST)")
}
