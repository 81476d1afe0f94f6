package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/issue-dashboard/internal/config"
	"github.com/naka-gawa/issue-dashboard/internal/render"
	"github.com/naka-gawa/issue-dashboard/internal/report"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Prints a summary of an existing dashboard data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("output")
			if !cmd.Flags().Changed("output") {
				cfg, err := config.Load("")
				if err != nil {
					return err
				}
				path = cfg.Output.Path
			}
			r, err := report.Read(path)
			if err != nil {
				return err
			}
			return render.Render(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Dashboard data file to read (default: "+config.DefaultOutputPath+")")
	return cmd
}
