package main

import (
	"fmt"

	"github.com/GriffinCanCode/litepro/internal/platform"
	"github.com/spf13/cobra"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List open word processor windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !platform.Supported() {
			return fmt.Errorf("window enumeration needs Windows")
		}
		desktop := platform.NewDesktop()

		titles := platform.FindWindows(desktop)
		if len(titles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no word processor windows found")
			return nil
		}
		current := platform.CurrentFilename(desktop)
		for _, title := range titles {
			marker := " "
			if current != "" && platform.DocumentName(title) == current {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
