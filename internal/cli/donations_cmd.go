package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pamoja/internal/core"
	"pamoja/internal/filter"
)

func newDonationsCmd(app *App) *cobra.Command {
	var (
		kind      string
		status    string
		method    string
		projectID string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "donations",
		Short: "List donations, optionally filtered",
		Long: "List donations. All filters are optional and AND-combined; the date\n" +
			"range applies only when both --from and --to are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := filter.Spec{
				Kind:      core.DonationKind(kind),
				Status:    core.PaymentStatus(status),
				Method:    core.PaymentMethod(method),
				ProjectID: projectID,
			}
			var err error
			if spec.Range, err = parseRange(from, to); err != nil {
				return err
			}

			snap := app.Store.Snapshot()
			matched := filter.Apply(snap.Donations, spec)
			app.Log.Debug("filtered donations", "matched", len(matched), "total", len(snap.Donations))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tDONOR\tTARGET\tMETHOD\tSTATUS\tAMOUNT")
			for _, d := range matched {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					d.ID,
					d.CreatedAt.Format("2006-01-02"),
					displayDonor(d),
					displayTarget(snap.Projects, d.Target),
					d.PaymentMethod, d.PaymentStatus, d.Amount)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "donation kind (project|general)")
	cmd.Flags().StringVar(&status, "status", "", "payment status (pending|completed|failed|refunded)")
	cmd.Flags().StringVar(&method, "method", "", "payment method (stripe|paypal|mpesa)")
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&from, "from", "", "range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "range end, YYYY-MM-DD (inclusive)")
	return cmd
}

func parseRange(from, to string) (filter.DateRange, error) {
	var r filter.DateRange
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return r, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		r.Start = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return r, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		// Inclusive end of day.
		r.End = t.Add(24*time.Hour - time.Nanosecond)
	}
	return r, nil
}

func displayDonor(d core.Donation) string {
	if d.Anonymous {
		return "Anonymous"
	}
	if d.DonorName != "" {
		return d.DonorName
	}
	return d.DonorEmail
}

func displayTarget(projects []core.Project, t core.DonationTarget) string {
	pid, ok := t.ProjectID()
	if !ok {
		return "General Fund"
	}
	for _, p := range projects {
		if p.ID == pid {
			return p.Title
		}
	}
	// Dangling reference in display only: recoverable per the error policy.
	return "Unknown Project"
}
