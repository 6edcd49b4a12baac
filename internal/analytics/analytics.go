// Package analytics computes derived metrics from a ledger snapshot.
// Every function here is pure: nothing mutates the snapshot, nothing
// errors on empty input, and the same snapshot always yields the same
// result. Callers wanting realized-funds-only figures must pre-filter
// donations by payment status themselves; no status filter is implied.
package analytics

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"pamoja/internal/core"
	"pamoja/internal/ledger"
)

// MethodStat summarizes the donations made through one payment method.
type MethodStat struct {
	Method     core.PaymentMethod
	Count      int
	Amount     core.Money
	Percentage float64 // share of total raised; 0 when nothing was raised
}

// MonthBucket holds one calendar month of activity. A bucket exists for
// every month with any activity, even when only one side is nonzero.
type MonthBucket struct {
	Month  string // "2006-01"
	Raised core.Money
	Spent  core.Money
}

// Report is the full analytics snapshot the dashboard consumes.
type Report struct {
	TotalFundsRaised  core.Money
	TotalFundsSpent   core.Money
	AvailableFunds    core.Money
	TotalProjects     int
	ActiveProjects    int
	CompletedProjects int
	TotalDonors       int
	TotalSupporters   int // registered users
	MonthlyGrowth     []MonthBucket
	TopProjects       []core.Project
	DonationMethods   []MethodStat
	PostsByAuthor     map[string]int
}

// TotalRaised sums donation amounts over the given scope.
func TotalRaised(donations []core.Donation) core.Money {
	var total core.Money
	for _, d := range donations {
		total = total.Add(d.Amount)
	}
	return total
}

// TotalSpent sums expenditure amounts over the given scope.
func TotalSpent(expenditures []core.Expenditure) core.Money {
	var total core.Money
	for _, e := range expenditures {
		total = total.Add(e.Amount)
	}
	return total
}

// AvailableFunds is raised minus spent. The result may be negative and
// is deliberately not clamped.
func AvailableFunds(donations []core.Donation, expenditures []core.Expenditure) core.Money {
	return TotalRaised(donations).Sub(TotalSpent(expenditures))
}

// TotalDonors counts distinct donor email addresses, case-sensitive.
// Anonymous donations still count their underlying email.
func TotalDonors(donations []core.Donation) int {
	seen := map[string]struct{}{}
	for _, d := range donations {
		seen[d.DonorEmail] = struct{}{}
	}
	return len(seen)
}

// GrowthRate is the percentage change from previous to current. A zero
// baseline saturates: 0 when both are zero, 100 when growing from zero.
func GrowthRate(current, previous core.Money) float64 {
	if previous.Cents == 0 {
		if current.Cents == 0 {
			return 0
		}
		return 100
	}
	return float64(current.Cents-previous.Cents) / float64(previous.Cents) * 100
}

// ProjectProgress is the funded share of the target in percent. A zero
// target yields 0 regardless of the raised amount.
func ProjectProgress(p core.Project) float64 {
	if p.TargetAmount.Cents == 0 {
		return 0
	}
	return float64(p.RaisedAmount.Cents) / float64(p.TargetAmount.Cents) * 100
}

// TopProjects ranks projects by raised amount descending, ties broken by
// ascending project id, truncated to n.
func TopProjects(projects []core.Project, n int) []core.Project {
	ranked := append([]core.Project(nil), projects...)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RaisedAmount.Cents != ranked[j].RaisedAmount.Cents {
			return ranked[i].RaisedAmount.Cents > ranked[j].RaisedAmount.Cents
		}
		return ranked[i].ID < ranked[j].ID
	})
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// PaymentMethodDistribution summarizes count, amount and share of total
// raised for each payment method present in the scope. Entries are
// ordered by amount descending, then method name, so output is
// deterministic. Every percentage is 0 when nothing was raised.
func PaymentMethodDistribution(donations []core.Donation) []MethodStat {
	total := TotalRaised(donations)
	byMethod := map[core.PaymentMethod]*MethodStat{}
	for _, d := range donations {
		st, ok := byMethod[d.PaymentMethod]
		if !ok {
			st = &MethodStat{Method: d.PaymentMethod}
			byMethod[d.PaymentMethod] = st
		}
		st.Count++
		st.Amount = st.Amount.Add(d.Amount)
	}
	out := make([]MethodStat, 0, len(byMethod))
	for _, st := range byMethod {
		if total.Cents > 0 {
			st.Percentage = float64(st.Amount.Cents) / float64(total.Cents) * 100
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// MonthlyGrowth buckets donations by creation month and expenditures by
// their expense date, in chronological order.
func MonthlyGrowth(donations []core.Donation, expenditures []core.Expenditure) []MonthBucket {
	const keyLayout = "2006-01"
	buckets := map[string]*MonthBucket{}
	get := func(key string) *MonthBucket {
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		return b
	}
	for _, d := range donations {
		b := get(d.CreatedAt.Format(keyLayout))
		b.Raised = b.Raised.Add(d.Amount)
	}
	for _, e := range expenditures {
		b := get(e.Date.Format(keyLayout))
		b.Spent = b.Spent.Add(e.Amount)
	}
	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Compute assembles the full report from one immutable snapshot. The
// independent sections run concurrently; the snapshot is never written,
// so the only synchronization needed is the group wait.
func Compute(ctx context.Context, snap ledger.Snapshot, topN int) (Report, error) {
	var r Report

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.TotalFundsRaised = TotalRaised(snap.Donations)
		r.TotalFundsSpent = TotalSpent(snap.Expenditures)
		r.AvailableFunds = r.TotalFundsRaised.Sub(r.TotalFundsSpent)
		r.TotalDonors = TotalDonors(snap.Donations)
		return ctx.Err()
	})
	g.Go(func() error {
		r.TotalProjects = len(snap.Projects)
		for _, p := range snap.Projects {
			switch p.Status {
			case core.StatusOngoing:
				r.ActiveProjects++
			case core.StatusCompleted:
				r.CompletedProjects++
			}
		}
		r.TopProjects = TopProjects(snap.Projects, topN)
		return ctx.Err()
	})
	g.Go(func() error {
		r.MonthlyGrowth = MonthlyGrowth(snap.Donations, snap.Expenditures)
		r.DonationMethods = PaymentMethodDistribution(snap.Donations)
		return ctx.Err()
	})
	g.Go(func() error {
		r.TotalSupporters = len(snap.Users)
		posts := make(map[string]int, len(snap.Users))
		for _, m := range snap.Microposts {
			posts[m.AuthorID]++
		}
		r.PostsByAuthor = posts
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return r, nil
}
