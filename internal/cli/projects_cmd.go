package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pamoja/internal/analytics"
)

func newProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects with funding progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTATUS\tRAISED\tTARGET\tPROGRESS")
			for _, p := range app.Store.ListProjects() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.1f%%\n",
					p.ID, p.Title, p.Category, p.Status,
					p.RaisedAmount, p.TargetAmount, analytics.ProjectProgress(p))
			}
			return tw.Flush()
		},
	}
}
