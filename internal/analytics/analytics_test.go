package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"pamoja/internal/core"
	"pamoja/internal/ledger"
)

func at(month, day int) time.Time {
	return time.Date(2025, time.Month(month), day, 9, 0, 0, 0, time.UTC)
}

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous int64
		want     float64
	}{
		{"both zero", 0, 0, 0},
		{"growth from zero saturates", 500, 0, 100},
		{"fifty percent up", 150, 100, 50},
		{"twenty percent down", 80, 100, -20},
		{"flat", 100, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GrowthRate(core.Units(tc.current), core.Units(tc.previous))
			if got != tc.want {
				t.Fatalf("GrowthRate(%d, %d) = %v, want %v", tc.current, tc.previous, got, tc.want)
			}
		})
	}
}

func TestProjectProgress(t *testing.T) {
	p := core.Project{TargetAmount: core.Units(25000), RaisedAmount: core.Units(10000)}
	if got := ProjectProgress(p); got != 40 {
		t.Fatalf("expected 40%%, got %v", got)
	}

	// Zero target never divides; progress is defined as 0.
	p = core.Project{TargetAmount: core.Money{}, RaisedAmount: core.Units(9999)}
	if got := ProjectProgress(p); got != 0 {
		t.Fatalf("zero target: expected 0, got %v", got)
	}
}

func TestTotalDonorsDistinctEmails(t *testing.T) {
	donations := []core.Donation{
		{DonorEmail: "a@x.com"},
		{DonorEmail: "a@x.com", Anonymous: true},
		{DonorEmail: "b@x.com"},
	}
	if got := TotalDonors(donations); got != 2 {
		t.Fatalf("expected 2 distinct donors, got %d", got)
	}
	// Case-sensitive exact match: a different casing is a different donor.
	donations = append(donations, core.Donation{DonorEmail: "A@x.com"})
	if got := TotalDonors(donations); got != 3 {
		t.Fatalf("expected 3 with case-sensitive match, got %d", got)
	}
	if got := TotalDonors(nil); got != 0 {
		t.Fatalf("empty input: expected 0, got %d", got)
	}
}

func TestEndToEndTotals(t *testing.T) {
	donations := []core.Donation{
		{Amount: core.Units(500), PaymentStatus: core.PaymentCompleted},
		{Amount: core.Units(1000), PaymentStatus: core.PaymentCompleted},
		{Amount: core.Units(250), PaymentStatus: core.PaymentCompleted},
	}
	expenditures := []core.Expenditure{
		{Amount: core.Units(300)},
		{Amount: core.Units(200)},
	}
	if got := TotalRaised(donations); got != core.Units(1750) {
		t.Fatalf("total raised: expected 1750.00, got %s", got)
	}
	if got := TotalSpent(expenditures); got != core.Units(500) {
		t.Fatalf("total spent: expected 500.00, got %s", got)
	}
	if got := AvailableFunds(donations, expenditures); got != core.Units(1250) {
		t.Fatalf("available: expected 1250.00, got %s", got)
	}
}

func TestAvailableFundsMayBeNegative(t *testing.T) {
	donations := []core.Donation{{Amount: core.Units(100)}}
	expenditures := []core.Expenditure{{Amount: core.Units(350)}}
	if got := AvailableFunds(donations, expenditures); got != core.CentsOf(-25000) {
		t.Fatalf("expected -250.00, got %s", got)
	}
}

func TestTotalRaisedHasNoImplicitStatusFilter(t *testing.T) {
	donations := []core.Donation{
		{Amount: core.Units(100), PaymentStatus: core.PaymentCompleted},
		{Amount: core.Units(40), PaymentStatus: core.PaymentPending},
		{Amount: core.Units(60), PaymentStatus: core.PaymentFailed},
	}
	if got := TotalRaised(donations); got != core.Units(200) {
		t.Fatalf("all statuses must count unless the caller pre-filters, got %s", got)
	}
}

func TestTopProjects(t *testing.T) {
	projects := []core.Project{
		{ID: "p-c", RaisedAmount: core.Units(15000)},
		{ID: "p-a", RaisedAmount: core.Units(25000)},
		{ID: "p-b", RaisedAmount: core.Units(18000)},
	}

	top := TopProjects(projects, 2)
	if len(top) != 2 || top[0].ID != "p-a" || top[1].ID != "p-b" {
		t.Fatalf("unexpected ranking: %+v", top)
	}

	t.Run("tie breaks by ascending id", func(t *testing.T) {
		tied := []core.Project{
			{ID: "p-z", RaisedAmount: core.Units(100)},
			{ID: "p-a", RaisedAmount: core.Units(100)},
		}
		top := TopProjects(tied, 2)
		if top[0].ID != "p-a" || top[1].ID != "p-z" {
			t.Fatalf("tie-break wrong: %s before %s", top[0].ID, top[1].ID)
		}
	})
	t.Run("n larger than input", func(t *testing.T) {
		if got := len(TopProjects(projects, 10)); got != 3 {
			t.Fatalf("expected all 3, got %d", got)
		}
	})
	t.Run("input untouched", func(t *testing.T) {
		TopProjects(projects, 3)
		if projects[0].ID != "p-c" {
			t.Fatal("ranking mutated the input slice")
		}
	})
}

func TestPaymentMethodDistribution(t *testing.T) {
	donations := []core.Donation{
		{Amount: core.Units(500), PaymentMethod: core.MethodMpesa},
		{Amount: core.Units(1000), PaymentMethod: core.MethodStripe},
		{Amount: core.Units(250), PaymentMethod: core.MethodMpesa},
		{Amount: core.Units(250), PaymentMethod: core.MethodPaypal},
	}

	stats := PaymentMethodDistribution(donations)
	if len(stats) != 3 {
		t.Fatalf("expected 3 methods, got %d", len(stats))
	}
	if stats[0].Method != core.MethodStripe || stats[0].Count != 1 {
		t.Fatalf("expected stripe first (largest amount), got %+v", stats[0])
	}

	var sum float64
	for _, st := range stats {
		sum += st.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages must sum to 100, got %v", sum)
	}

	t.Run("zero raised yields zero percentages", func(t *testing.T) {
		// Unreachable through the store (amounts are validated positive)
		// but the aggregation itself must not divide by zero.
		stats := PaymentMethodDistribution([]core.Donation{
			{Amount: core.Money{}, PaymentMethod: core.MethodMpesa},
		})
		if len(stats) != 1 || stats[0].Percentage != 0 {
			t.Fatalf("expected single 0%% entry, got %+v", stats)
		}
	})
	t.Run("empty input", func(t *testing.T) {
		if got := PaymentMethodDistribution(nil); len(got) != 0 {
			t.Fatalf("expected empty, got %+v", got)
		}
	})
}

func TestMonthlyGrowth(t *testing.T) {
	donations := []core.Donation{
		{Amount: core.Units(500), CreatedAt: at(6, 2)},
		{Amount: core.Units(1000), CreatedAt: at(6, 18)},
		{Amount: core.Units(250), CreatedAt: at(8, 4)},
	}
	expenditures := []core.Expenditure{
		{Amount: core.Units(300), Date: core.NewDate(2025, 7, 2)},
		{Amount: core.Units(200), Date: core.NewDate(2025, 8, 15)},
	}

	buckets := MonthlyGrowth(donations, expenditures)
	if len(buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d: %+v", len(buckets), buckets)
	}

	// Chronological order, one-sided months included.
	want := []MonthBucket{
		{Month: "2025-06", Raised: core.Units(1500), Spent: core.Money{}},
		{Month: "2025-07", Raised: core.Money{}, Spent: core.Units(300)},
		{Month: "2025-08", Raised: core.Units(250), Spent: core.Units(200)},
	}
	for i, b := range buckets {
		if b != want[i] {
			t.Fatalf("bucket %d: expected %+v, got %+v", i, want[i], b)
		}
	}

	if got := MonthlyGrowth(nil, nil); len(got) != 0 {
		t.Fatalf("empty input must give empty buckets, got %+v", got)
	}
}

func TestComputeReport(t *testing.T) {
	snap := ledger.Snapshot{
		Projects: []core.Project{
			{ID: "p-1", Status: core.StatusOngoing, RaisedAmount: core.Units(1500), TargetAmount: core.Units(25000)},
			{ID: "p-2", Status: core.StatusCompleted, RaisedAmount: core.Units(250), TargetAmount: core.Units(1000)},
			{ID: "p-3", Status: core.StatusDraft},
		},
		Donations: []core.Donation{
			{Amount: core.Units(500), DonorEmail: "a@x.com", PaymentMethod: core.MethodMpesa, CreatedAt: at(6, 2)},
			{Amount: core.Units(1000), DonorEmail: "b@x.com", PaymentMethod: core.MethodStripe, CreatedAt: at(6, 18)},
			{Amount: core.Units(250), DonorEmail: "a@x.com", PaymentMethod: core.MethodMpesa, CreatedAt: at(7, 4)},
		},
		Expenditures: []core.Expenditure{
			{Amount: core.Units(300), Date: core.NewDate(2025, 7, 2)},
			{Amount: core.Units(200), Date: core.NewDate(2025, 7, 15)},
		},
		Users: []core.User{{ID: "u-1"}, {ID: "u-2"}},
		Microposts: []core.Micropost{
			{AuthorID: "u-1"}, {AuthorID: "u-1"}, {AuthorID: "u-2"},
		},
	}

	rep, err := Compute(context.Background(), snap, 2)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if rep.TotalFundsRaised != core.Units(1750) {
		t.Fatalf("raised: got %s", rep.TotalFundsRaised)
	}
	if rep.TotalFundsSpent != core.Units(500) {
		t.Fatalf("spent: got %s", rep.TotalFundsSpent)
	}
	if rep.AvailableFunds != core.Units(1250) {
		t.Fatalf("available: got %s", rep.AvailableFunds)
	}
	if rep.TotalProjects != 3 || rep.ActiveProjects != 1 || rep.CompletedProjects != 1 {
		t.Fatalf("project counts wrong: %+v", rep)
	}
	if rep.TotalDonors != 2 {
		t.Fatalf("donors: got %d", rep.TotalDonors)
	}
	if rep.TotalSupporters != 2 {
		t.Fatalf("supporters: got %d", rep.TotalSupporters)
	}
	if len(rep.TopProjects) != 2 || rep.TopProjects[0].ID != "p-1" {
		t.Fatalf("top projects wrong: %+v", rep.TopProjects)
	}
	if len(rep.MonthlyGrowth) != 2 {
		t.Fatalf("expected 2 month buckets, got %d", len(rep.MonthlyGrowth))
	}
	if len(rep.DonationMethods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(rep.DonationMethods))
	}
	if rep.PostsByAuthor["u-1"] != 2 || rep.PostsByAuthor["u-2"] != 1 {
		t.Fatalf("posts by author wrong: %+v", rep.PostsByAuthor)
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	rep, err := Compute(context.Background(), ledger.Snapshot{}, 5)
	if err != nil {
		t.Fatalf("empty snapshot must not error: %v", err)
	}
	if rep.TotalFundsRaised.Cents != 0 || rep.TotalDonors != 0 {
		t.Fatalf("expected zero-valued report, got %+v", rep)
	}
	if len(rep.TopProjects) != 0 || len(rep.MonthlyGrowth) != 0 || len(rep.DonationMethods) != 0 {
		t.Fatalf("expected empty sequences, got %+v", rep)
	}
}
