package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cadence/internal/app"
	"go.trai.ch/cadence/internal/core/domain"
)

func (c *CLI) newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [files...]",
		Short: "Order the tasks of one or more task files",
		Long: `Order the tasks of one or more task files.

Task files are JSON (.json), YAML (.yaml, .yml) or HCL (.hcl). Use - to read a
JSON or YAML document from standard input.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			project, _ := cmd.Flags().GetString("project")
			output, _ := cmd.Flags().GetString("output")
			watch, _ := cmd.Flags().GetBool("watch")
			return c.app.Schedule(cmd.Context(), c.cfg, args, app.ScheduleOptions{
				ProjectID: project,
				Output:    output,
				Watch:     watch,
			})
		},
	}
	cmd.Flags().StringP("project", "p", "", "Project ID echoed in the result (default: file base name)")
	cmd.Flags().StringP("output", "o", domain.OutputText, "Output format: text or json")
	cmd.Flags().BoolP("watch", "w", false, "Re-schedule files whenever they change")
	return cmd
}
