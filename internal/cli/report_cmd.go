package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pamoja/internal/analytics"
	"pamoja/internal/core"
	"pamoja/internal/filter"
)

func newReportCmd(app *App) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full analytics report",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := app.Store.Snapshot()

			rep, err := analytics.Compute(cmd.Context(), snap, topN)
			if err != nil {
				return fmt.Errorf("compute report: %w", err)
			}

			// Raw totals sum every donation regardless of payment status;
			// realized funds are a caller-side pre-filter through the
			// filter engine.
			completed := filter.Apply(snap.Donations, filter.Spec{Status: core.PaymentCompleted})
			realized := analytics.TotalRaised(completed)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Funds raised (all statuses):  %s\n", rep.TotalFundsRaised)
			fmt.Fprintf(out, "Funds raised (completed):     %s\n", realized)
			fmt.Fprintf(out, "Funds spent:                  %s\n", rep.TotalFundsSpent)
			fmt.Fprintf(out, "Available funds:              %s\n", rep.AvailableFunds)
			fmt.Fprintf(out, "Projects: %d total, %d active, %d completed\n",
				rep.TotalProjects, rep.ActiveProjects, rep.CompletedProjects)
			fmt.Fprintf(out, "Donors: %d distinct, supporters registered: %d\n",
				rep.TotalDonors, rep.TotalSupporters)

			fmt.Fprintf(out, "\nTop projects:\n")
			tw := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "  TITLE\tRAISED\tTARGET\tPROGRESS")
			for _, p := range rep.TopProjects {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%.1f%%\n",
					p.Title, p.RaisedAmount, p.TargetAmount, analytics.ProjectProgress(p))
			}
			tw.Flush()

			fmt.Fprintf(out, "\nPayment methods:\n")
			tw = tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "  METHOD\tCOUNT\tAMOUNT\tSHARE")
			for _, m := range rep.DonationMethods {
				fmt.Fprintf(tw, "  %s\t%d\t%s\t%.1f%%\n", m.Method, m.Count, m.Amount, m.Percentage)
			}
			tw.Flush()

			fmt.Fprintf(out, "\nMonthly activity:\n")
			tw = tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "  MONTH\tRAISED\tSPENT\tGROWTH")
			var prev core.Money
			for i, b := range rep.MonthlyGrowth {
				growth := ""
				if i > 0 {
					growth = fmt.Sprintf("%+.1f%%", analytics.GrowthRate(b.Raised, prev))
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", b.Month, b.Raised, b.Spent, growth)
				prev = b.Raised
			}
			tw.Flush()

			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", app.Cfg.TopProjects, "number of top projects to show")
	return cmd
}
