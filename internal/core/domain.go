// Package core defines the domain model for the pamoja ledger: projects,
// donations, expenditures and their supporting records, together with
// validation rules and the shared error taxonomy.
package core

import (
	"strings"
	"time"
)

const (
	CategoryEducation      ProjectCategory = "education"
	CategoryHealthcare     ProjectCategory = "healthcare"
	CategoryWater          ProjectCategory = "water"
	CategoryFood           ProjectCategory = "food"
	CategoryInfrastructure ProjectCategory = "infrastructure"
	CategoryEmergency      ProjectCategory = "emergency"
)

const (
	StatusDraft     ProjectStatus = "draft"
	StatusOngoing   ProjectStatus = "ongoing"
	StatusCompleted ProjectStatus = "completed"
	StatusPaused    ProjectStatus = "paused"
)

const (
	MethodStripe PaymentMethod = "stripe"
	MethodPaypal PaymentMethod = "paypal"
	MethodMpesa  PaymentMethod = "mpesa"
)

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

const (
	ExpenseMaterials ExpenseCategory = "materials"
	ExpenseLabor     ExpenseCategory = "labor"
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseEquipment ExpenseCategory = "equipment"
	ExpenseOther     ExpenseCategory = "other"
)

const (
	RoleAdmin     UserRole = "admin"
	RoleDonor     UserRole = "donor"
	RoleVolunteer UserRole = "volunteer"
)

const (
	KindProject DonationKind = "project"
	KindGeneral DonationKind = "general"
)

type (
	ProjectCategory string
	ProjectStatus   string
	PaymentMethod   string
	PaymentStatus   string
	ExpenseCategory string
	UserRole        string

	// DonationKind distinguishes project-bound donations from donations
	// to the general fund.
	DonationKind string

	Project struct {
		ID           string
		Title        string
		Description  string
		Category     ProjectCategory
		Location     string
		TargetAmount Money
		RaisedAmount Money
		Status       ProjectStatus
		StartDate    Date
		EndDate      Date // optional; zero means open-ended
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	Donation struct {
		ID            string
		Amount        Money
		Target        DonationTarget
		DonorName     string
		DonorEmail    string
		DonorPhone    string
		PaymentMethod PaymentMethod
		PaymentStatus PaymentStatus
		TransactionID string
		Message       string
		Anonymous     bool // hides donor identity from display; the record keeps it
		CreatedAt     time.Time
	}

	Expenditure struct {
		ID          string
		ProjectID   string
		DonationID  string // optional; the donation that funded this expense
		Title       string
		Amount      Money
		Date        Date
		Description string
		Category    ExpenseCategory
		CreatedAt   time.Time
		CreatedBy   string
	}

	ProjectUpdate struct {
		ID        string
		ProjectID string
		Title     string
		Content   string
		CreatedAt time.Time
		CreatedBy string
	}

	User struct {
		ID       string
		Name     string
		Email    string
		Role     UserRole
		JoinedAt time.Time
	}

	Micropost struct {
		ID        string
		AuthorID  string
		Body      string
		CreatedAt time.Time
	}
)

// DonationTarget is the destination of a donation: either a specific
// project or the general fund. The zero value is the general fund.
type DonationTarget struct {
	projectID string
}

// GeneralFund returns the target for donations not tied to a project.
func GeneralFund() DonationTarget {
	return DonationTarget{}
}

// ProjectTarget returns the target for donations bound to the given project.
func ProjectTarget(projectID string) DonationTarget {
	return DonationTarget{projectID: projectID}
}

// IsGeneral reports whether the donation goes to the general fund.
func (t DonationTarget) IsGeneral() bool {
	return t.projectID == ""
}

// ProjectID returns the bound project id and whether one is set.
func (t DonationTarget) ProjectID() (string, bool) {
	return t.projectID, t.projectID != ""
}

// Kind returns the donation kind implied by the target.
func (t DonationTarget) Kind() DonationKind {
	if t.IsGeneral() {
		return KindGeneral
	}
	return KindProject
}

func (c ProjectCategory) Valid() bool {
	switch c {
	case CategoryEducation, CategoryHealthcare, CategoryWater,
		CategoryFood, CategoryInfrastructure, CategoryEmergency:
		return true
	}
	return false
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusOngoing, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodStripe, MethodPaypal, MethodMpesa:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transition other
// than the explicit completed -> refunded one.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether a donation may move from s to next.
// Allowed: pending -> completed | failed, completed -> refunded.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentCompleted || next == PaymentFailed
	case PaymentCompleted:
		return next == PaymentRefunded
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseMaterials, ExpenseLabor, ExpenseTransport,
		ExpenseEquipment, ExpenseOther:
		return true
	}
	return false
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleDonor, RoleVolunteer:
		return true
	}
	return false
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return validationf("project title is required")
	}
	if !p.Category.Valid() {
		return validationf("invalid project category %q", p.Category)
	}
	if !p.Status.Valid() {
		return validationf("invalid project status %q", p.Status)
	}
	if p.TargetAmount.Cents < 0 {
		return validationf("target amount cannot be negative")
	}
	if p.RaisedAmount.Cents < 0 {
		return validationf("raised amount cannot be negative")
	}
	if err := p.StartDate.Validate(); err != nil {
		return validationf("invalid start date: %v", err)
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate.Time) {
		return validationf("end date must not precede start date")
	}
	return nil
}

func (d Donation) Validate() error {
	if err := d.Amount.Validate(); err != nil {
		return validationf("invalid donation amount: %v", err)
	}
	if strings.TrimSpace(d.DonorEmail) == "" {
		return validationf("donor email is required")
	}
	if !d.PaymentMethod.Valid() {
		return validationf("invalid payment method %q", d.PaymentMethod)
	}
	if !d.PaymentStatus.Valid() {
		return validationf("invalid payment status %q", d.PaymentStatus)
	}
	return nil
}

func (e Expenditure) Validate() error {
	if strings.TrimSpace(e.ProjectID) == "" {
		return validationf("expenditure project id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return validationf("expenditure title is required")
	}
	if err := e.Amount.Validate(); err != nil {
		return validationf("invalid expenditure amount: %v", err)
	}
	if err := e.Date.Validate(); err != nil {
		return validationf("invalid expenditure date: %v", err)
	}
	if !e.Category.Valid() {
		return validationf("invalid expenditure category %q", e.Category)
	}
	return nil
}

func (u ProjectUpdate) Validate() error {
	if strings.TrimSpace(u.ProjectID) == "" {
		return validationf("update project id is required")
	}
	if strings.TrimSpace(u.Title) == "" {
		return validationf("update title is required")
	}
	if strings.TrimSpace(u.Content) == "" {
		return validationf("update content is required")
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return validationf("user name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return validationf("user email is required")
	}
	if !u.Role.Valid() {
		return validationf("invalid user role %q", u.Role)
	}
	return nil
}

func (m Micropost) Validate() error {
	if strings.TrimSpace(m.AuthorID) == "" {
		return validationf("micropost author id is required")
	}
	body := strings.TrimSpace(m.Body)
	if body == "" {
		return validationf("micropost body is required")
	}
	if len(body) > 280 {
		return validationf("micropost body too long (max 280 characters)")
	}
	return nil
}

// Date is a calendar date; the time-of-day portion is not significant
// for month bucketing.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return validationf("date cannot be zero")
	}
	return nil
}
