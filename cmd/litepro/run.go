package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/litepro/internal/script"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a typing script",
	Long: `Runs a YAML, JSON or TOML typing script against the word processor and
prints the run report as JSON. The format follows the file extension
unless --format is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScript(cmd, args[0])
		if err != nil {
			return err
		}
		if target, _ := cmd.Flags().GetString("target"); target != "" {
			s.Target = target
		}
		if keepGoing, _ := cmd.Flags().GetBool("continue-on-error"); keepGoing {
			s.ContinueOnError = true
		}

		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		report, runErr := app.Runner.Run(ctx, s)
		if report != nil {
			out, err := sonic.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return runErr
	},
}

func loadScript(cmd *cobra.Command, path string) (*script.Script, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		return script.Load(path)
	}
	format, err := script.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := script.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("format", "", "Script format: yaml, json or toml")
	runCmd.Flags().String("target", "", "Activate the document whose title contains this text first")
	runCmd.Flags().Bool("continue-on-error", false, "Keep running after a failed step")
}
