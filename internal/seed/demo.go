package seed

import "time"

// Demo returns a small deterministic ledger for local exploration: three
// ongoing field projects, a mix of donations across every payment method
// and status, expenditures against two projects, and a handful of
// community records. Applied through the normal upsert path like any
// other seed file.
func Demo() File {
	return File{
		Users: []User{
			{ID: "u-amina", Name: "Amina Odhiambo", Email: "amina@pamoja.example", Role: "admin", JoinedAt: ts("2025-01-10T08:00:00Z")},
			{ID: "u-james", Name: "James Mwangi", Email: "james@donors.example", Role: "donor", JoinedAt: ts("2025-02-03T12:30:00Z")},
			{ID: "u-sara", Name: "Sara Kimani", Email: "sara@donors.example", Role: "donor", JoinedAt: ts("2025-02-14T09:15:00Z")},
			{ID: "u-peter", Name: "Peter Njoroge", Email: "peter@volunteers.example", Role: "volunteer", JoinedAt: ts("2025-03-01T10:00:00Z")},
		},
		Projects: []Project{
			{
				ID: "p-kibera-water", Title: "Clean Water for Kibera",
				Description: "Borehole drilling and storage tanks for three villages.",
				Category:    "water", Location: "Kibera, Nairobi",
				TargetAmount: "25000", Status: "ongoing", StartDate: "2025-03-15",
			},
			{
				ID: "p-nakuru-school", Title: "Nakuru Primary School Rebuild",
				Description: "Classroom reconstruction and desks for 240 pupils.",
				Category:    "education", Location: "Nakuru",
				TargetAmount: "18000", Status: "ongoing", StartDate: "2025-05-01",
			},
			{
				ID: "p-turkana-clinic", Title: "Turkana Mobile Clinic",
				Description: "Outreach clinic van and a six-month medicine stock.",
				Category:    "healthcare", Location: "Turkana County",
				TargetAmount: "30000", Status: "draft", StartDate: "2026-01-01",
			},
		},
		Donations: []Donation{
			{
				ID: "d-0001", Amount: "500", ProjectID: "p-kibera-water",
				DonorName: "James Mwangi", DonorEmail: "james@donors.example",
				Method: "mpesa", Status: "completed", TransactionID: "MP-88121",
				CreatedAt: ts("2025-06-02T14:05:00Z"),
			},
			{
				ID: "d-0002", Amount: "1000", ProjectID: "p-kibera-water",
				DonorName: "Sara Kimani", DonorEmail: "sara@donors.example",
				Method: "stripe", Status: "completed", TransactionID: "ch_3Nqa",
				Message:   "Keep up the great work.",
				CreatedAt: ts("2025-06-18T19:40:00Z"),
			},
			{
				ID: "d-0003", Amount: "250", ProjectID: "p-nakuru-school",
				DonorEmail: "james@donors.example", Anonymous: true,
				Method: "paypal", Status: "completed", TransactionID: "PAY-7troc",
				CreatedAt: ts("2025-07-04T08:22:00Z"),
			},
			{
				ID: "d-0004", Amount: "150",
				DonorName: "Grace Wanjiru", DonorEmail: "grace@donors.example",
				Method: "mpesa", Status: "pending",
				CreatedAt: ts("2025-07-21T16:55:00Z"),
			},
			{
				ID: "d-0005", Amount: "75", ProjectID: "p-nakuru-school",
				DonorName: "Sara Kimani", DonorEmail: "sara@donors.example",
				Method: "stripe", Status: "failed",
				CreatedAt: ts("2025-08-09T11:10:00Z"),
			},
		},
		Expenditures: []Expenditure{
			{
				ID: "e-0001", ProjectID: "p-kibera-water", DonationID: "d-0002",
				Title: "Drilling rig hire", Amount: "300", Date: "2025-07-02",
				Category: "equipment", CreatedBy: "u-amina",
			},
			{
				ID: "e-0002", ProjectID: "p-kibera-water",
				Title: "Site survey crew", Amount: "200", Date: "2025-07-15",
				Category: "labor", CreatedBy: "u-amina",
			},
		},
		Updates: []Update{
			{
				ID: "pu-0001", ProjectID: "p-kibera-water",
				Title:     "Survey complete",
				Content:   "Hydrogeological survey finished; drilling starts next week.",
				CreatedBy: "u-amina",
			},
		},
		Microposts: []Micropost{
			{ID: "mp-0001", AuthorID: "u-peter", Body: "Spent the weekend at the Kibera site. The community turnout was incredible.", CreatedAt: ts("2025-07-16T18:00:00Z")},
			{ID: "mp-0002", AuthorID: "u-amina", Body: "Drilling rig arrived on schedule.", CreatedAt: ts("2025-07-17T07:45:00Z")},
		},
	}
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
