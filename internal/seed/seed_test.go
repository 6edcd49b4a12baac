package seed

import (
	"os"
	"path/filepath"
	"testing"

	"pamoja/internal/core"
	"pamoja/internal/ledger"
)

func TestApplyDemo(t *testing.T) {
	store := ledger.New()
	counts, err := Apply(store, Demo())
	if err != nil {
		t.Fatalf("apply demo: %v", err)
	}
	if counts.Projects != 3 || counts.Donations != 5 || counts.Expenditures != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	if counts.Users != 4 || counts.Updates != 1 || counts.Microposts != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	// Raised amounts are recomputed from completed donations only.
	p, err := store.GetProject("p-kibera-water")
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if p.RaisedAmount != core.Units(1500) {
		t.Fatalf("kibera raised: expected 1500.00, got %s", p.RaisedAmount)
	}
	p, _ = store.GetProject("p-nakuru-school")
	if p.RaisedAmount != core.Units(250) {
		t.Fatalf("nakuru raised: expected 250.00 (failed donation excluded), got %s", p.RaisedAmount)
	}
}

func TestApplyRejectsDanglingReferences(t *testing.T) {
	store := ledger.New()
	f := File{
		Donations: []Donation{
			{ID: "d-1", Amount: "100", ProjectID: "p-missing",
				DonorEmail: "a@x.com", Method: "mpesa", Status: "pending"},
		},
	}
	if _, err := Apply(store, f); err == nil {
		t.Fatal("expected referential integrity failure")
	}
	if got := len(store.ListDonations()); got != 0 {
		t.Fatalf("failed load must not leave the donation behind, got %d", got)
	}
}

func TestApplyRejectsMalformedAmount(t *testing.T) {
	store := ledger.New()
	f := File{
		Projects: []Project{
			{ID: "p-1", Title: "T", Category: "water", TargetAmount: "12.3.4",
				Status: "draft", StartDate: "2025-01-01"},
		},
	}
	if _, err := Apply(store, f); err == nil {
		t.Fatal("expected amount parse failure")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	raw := `{
		"projects": [
			{"id": "p-1", "title": "Well", "category": "water",
			 "target_amount": "5000", "status": "ongoing", "start_date": "2025-02-01"}
		],
		"donations": [
			{"id": "d-1", "amount": "49.99", "project_id": "p-1",
			 "donor_email": "a@x.com", "payment_method": "stripe",
			 "payment_status": "completed", "created_at": "2025-03-01T12:00:00Z"}
		]
	}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	store := ledger.New()
	counts, err := Apply(store, f)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if counts.Projects != 1 || counts.Donations != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	d, err := store.GetDonation("d-1")
	if err != nil {
		t.Fatalf("get donation: %v", err)
	}
	if d.Amount != core.CentsOf(4999) {
		t.Fatalf("expected 49.99, got %s", d.Amount)
	}
	if pid, ok := d.Target.ProjectID(); !ok || pid != "p-1" {
		t.Fatalf("expected project target p-1, got %q", pid)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
