package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/litepro/internal/controller"
	"github.com/GriffinCanCode/litepro/internal/platform"
	"github.com/GriffinCanCode/litepro/internal/providers/hwp"
	"github.com/GriffinCanCode/litepro/internal/providers/system"
	"github.com/GriffinCanCode/litepro/internal/shared/types"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools scripts and the API can call",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Definitions need no session; nothing is attached
		var tools []types.Tool
		tools = append(tools, hwp.NewProvider(controller.New(nil, controller.DefaultOptions()), logger).Definition().Tools...)
		tools = append(tools, system.NewProvider(platform.NewDesktop(), nil, logger).Definition().Tools...)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOOL\tPARAMETERS\tDESCRIPTION")
		for _, tool := range tools {
			params := make([]string, 0, len(tool.Parameters))
			for _, p := range tool.Parameters {
				if p.Required {
					params = append(params, p.Name)
				} else {
					params = append(params, "["+p.Name+"]")
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.TrimPrefix(tool.ID, hwp.ServiceID+"."), strings.Join(params, " "), tool.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
