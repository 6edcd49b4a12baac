// Package seed is the import boundary of the ledger. Records arrive as a
// JSON seed file (or the built-in demo set) and are routed through the
// store's normal upsert path, so seeding gets the same validation and
// referential-integrity checks as manual entry.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pamoja/internal/core"
	"pamoja/internal/ledger"
)

const dateLayout = "2006-01-02"

type (
	// File is the on-disk seed format. Amounts are decimal strings
	// ("500" or "499.99"); dates are "2006-01-02"; timestamps RFC 3339.
	File struct {
		Users        []User        `json:"users,omitempty"`
		Projects     []Project     `json:"projects,omitempty"`
		Donations    []Donation    `json:"donations,omitempty"`
		Expenditures []Expenditure `json:"expenditures,omitempty"`
		Updates      []Update      `json:"project_updates,omitempty"`
		Microposts   []Micropost   `json:"microposts,omitempty"`
	}

	User struct {
		ID       string    `json:"id"`
		Name     string    `json:"name"`
		Email    string    `json:"email"`
		Role     string    `json:"role"`
		JoinedAt time.Time `json:"joined_at,omitempty"`
	}

	Project struct {
		ID           string `json:"id"`
		Title        string `json:"title"`
		Description  string `json:"description,omitempty"`
		Category     string `json:"category"`
		Location     string `json:"location,omitempty"`
		TargetAmount string `json:"target_amount"`
		Status       string `json:"status"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date,omitempty"`
	}

	Donation struct {
		ID            string    `json:"id"`
		Amount        string    `json:"amount"`
		ProjectID     string    `json:"project_id,omitempty"` // empty = general fund
		DonorName     string    `json:"donor_name,omitempty"`
		DonorEmail    string    `json:"donor_email"`
		DonorPhone    string    `json:"donor_phone,omitempty"`
		Method        string    `json:"payment_method"`
		Status        string    `json:"payment_status"`
		TransactionID string    `json:"transaction_id,omitempty"`
		Message       string    `json:"message,omitempty"`
		Anonymous     bool      `json:"anonymous,omitempty"`
		CreatedAt     time.Time `json:"created_at,omitempty"`
	}

	Expenditure struct {
		ID          string `json:"id"`
		ProjectID   string `json:"project_id"`
		DonationID  string `json:"donation_id,omitempty"`
		Title       string `json:"title"`
		Amount      string `json:"amount"`
		Date        string `json:"date"`
		Description string `json:"description,omitempty"`
		Category    string `json:"category"`
		CreatedBy   string `json:"created_by,omitempty"`
	}

	Update struct {
		ID        string `json:"id"`
		ProjectID string `json:"project_id"`
		Title     string `json:"title"`
		Content   string `json:"content"`
		CreatedBy string `json:"created_by,omitempty"`
	}

	Micropost struct {
		ID        string    `json:"id"`
		AuthorID  string    `json:"author_id"`
		Body      string    `json:"body"`
		CreatedAt time.Time `json:"created_at,omitempty"`
	}
)

// Counts reports how many records of each kind were applied.
type Counts struct {
	Users        int
	Projects     int
	Donations    int
	Expenditures int
	Updates      int
	Microposts   int
}

// Load reads and decodes a seed file.
func Load(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read seed file: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// Apply upserts every record of the file into the store, in dependency
// order (users, projects, donations, expenditures, updates, microposts).
// The first failing record aborts the load.
func Apply(store *ledger.Store, f File) (Counts, error) {
	var c Counts
	for _, u := range f.Users {
		rec := core.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Role:     core.UserRole(u.Role),
			JoinedAt: u.JoinedAt,
		}
		if _, err := store.UpsertUser(rec); err != nil {
			return c, fmt.Errorf("user %q: %w", u.Email, err)
		}
		c.Users++
	}
	for _, p := range f.Projects {
		rec, err := p.decode()
		if err == nil {
			_, err = store.UpsertProject(rec)
		}
		if err != nil {
			return c, fmt.Errorf("project %q: %w", p.Title, err)
		}
		c.Projects++
	}
	for _, d := range f.Donations {
		rec, err := d.decode()
		if err == nil {
			_, err = store.UpsertDonation(rec)
		}
		if err != nil {
			return c, fmt.Errorf("donation %q: %w", d.ID, err)
		}
		c.Donations++
	}
	for _, e := range f.Expenditures {
		rec, err := e.decode()
		if err == nil {
			_, err = store.UpsertExpenditure(rec)
		}
		if err != nil {
			return c, fmt.Errorf("expenditure %q: %w", e.Title, err)
		}
		c.Expenditures++
	}
	for _, u := range f.Updates {
		rec := core.ProjectUpdate{
			ID:        u.ID,
			ProjectID: u.ProjectID,
			Title:     u.Title,
			Content:   u.Content,
			CreatedBy: u.CreatedBy,
		}
		if _, err := store.UpsertProjectUpdate(rec); err != nil {
			return c, fmt.Errorf("project update %q: %w", u.Title, err)
		}
		c.Updates++
	}
	for _, m := range f.Microposts {
		rec := core.Micropost{
			ID:        m.ID,
			AuthorID:  m.AuthorID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		}
		if _, err := store.UpsertMicropost(rec); err != nil {
			return c, fmt.Errorf("micropost %q: %w", m.ID, err)
		}
		c.Microposts++
	}
	return c, nil
}

func (p Project) decode() (core.Project, error) {
	target, err := core.ParseAmount(p.TargetAmount)
	if err != nil {
		return core.Project{}, err
	}
	start, err := parseDate(p.StartDate)
	if err != nil {
		return core.Project{}, err
	}
	var end core.Date
	if p.EndDate != "" {
		if end, err = parseDate(p.EndDate); err != nil {
			return core.Project{}, err
		}
	}
	return core.Project{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     core.ProjectCategory(p.Category),
		Location:     p.Location,
		TargetAmount: target,
		Status:       core.ProjectStatus(p.Status),
		StartDate:    start,
		EndDate:      end,
	}, nil
}

func (d Donation) decode() (core.Donation, error) {
	amount, err := core.ParseAmount(d.Amount)
	if err != nil {
		return core.Donation{}, err
	}
	target := core.GeneralFund()
	if d.ProjectID != "" {
		target = core.ProjectTarget(d.ProjectID)
	}
	return core.Donation{
		ID:            d.ID,
		Amount:        amount,
		Target:        target,
		DonorName:     d.DonorName,
		DonorEmail:    d.DonorEmail,
		DonorPhone:    d.DonorPhone,
		PaymentMethod: core.PaymentMethod(d.Method),
		PaymentStatus: core.PaymentStatus(d.Status),
		TransactionID: d.TransactionID,
		Message:       d.Message,
		Anonymous:     d.Anonymous,
		CreatedAt:     d.CreatedAt,
	}, nil
}

func (e Expenditure) decode() (core.Expenditure, error) {
	amount, err := core.ParseAmount(e.Amount)
	if err != nil {
		return core.Expenditure{}, err
	}
	date, err := parseDate(e.Date)
	if err != nil {
		return core.Expenditure{}, err
	}
	return core.Expenditure{
		ID:          e.ID,
		ProjectID:   e.ProjectID,
		DonationID:  e.DonationID,
		Title:       e.Title,
		Amount:      amount,
		Date:        date,
		Description: e.Description,
		Category:    core.ExpenseCategory(e.Category),
		CreatedBy:   e.CreatedBy,
	}, nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return core.Date{Time: t}, nil
}
