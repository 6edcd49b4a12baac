// Package ledger holds the authoritative in-memory collections of the
// pamoja ledger: projects, donations, expenditures, project updates,
// users and microposts. The store is the sole owner of these records;
// readers get copies, never references into its internals.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pamoja/internal/core"
)

// Store is a mutex-guarded in-memory ledger. Writes are single-writer:
// each upsert validates, checks referential integrity and commits under
// one lock acquisition, so an integrity check can never interleave with
// a delete of the referenced record. Insertion order is preserved so
// that listing is deterministic.
type Store struct {
	mu sync.RWMutex

	projects     []core.Project
	donations    []core.Donation
	expenditures []core.Expenditure
	updates      []core.ProjectUpdate
	users        []core.User
	microposts   []core.Micropost

	projectIdx     map[string]int
	donationIdx    map[string]int
	expenditureIdx map[string]int
	updateIdx      map[string]int
	userIdx        map[string]int
	micropostIdx   map[string]int

	now func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		projectIdx:     map[string]int{},
		donationIdx:    map[string]int{},
		expenditureIdx: map[string]int{},
		updateIdx:      map[string]int{},
		userIdx:        map[string]int{},
		micropostIdx:   map[string]int{},
		now:            time.Now,
	}
}

// NewWithClock creates an empty store with an injected clock, for tests.
func NewWithClock(now func() time.Time) *Store {
	s := New()
	s.now = now
	return s
}

func newID() string {
	return uuid.NewString()
}

// UpsertProject inserts or replaces a project. A missing id and createdAt
// are assigned; updatedAt is always advanced.
func (s *Store) UpsertProject(p core.Project) (core.Project, error) {
	if err := p.Validate(); err != nil {
		return core.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if i, ok := s.projectIdx[p.ID]; ok {
		s.projects[i] = p
	} else {
		s.projectIdx[p.ID] = len(s.projects)
		s.projects = append(s.projects, p)
	}
	return p, nil
}

// UpsertDonation inserts or replaces a donation. Project-bound donations
// must reference an existing project. Replacing an existing donation is
// only allowed along the payment status transition rules; terminal
// donations are otherwise immutable.
func (s *Store) UpsertDonation(d core.Donation) (core.Donation, error) {
	if err := d.Validate(); err != nil {
		return core.Donation{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if pid, ok := d.Target.ProjectID(); ok {
		if _, exists := s.projectIdx[pid]; !exists {
			return core.Donation{}, &core.ReferentialIntegrityError{Kind: "project", Ref: pid}
		}
	}

	if d.ID == "" {
		d.ID = newID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = s.now()
	}

	if i, ok := s.donationIdx[d.ID]; ok {
		prev := s.donations[i]
		if prev.PaymentStatus != d.PaymentStatus && !prev.PaymentStatus.CanTransitionTo(d.PaymentStatus) {
			return core.Donation{}, &core.ValidationError{
				Msg: "payment status cannot move from " + string(prev.PaymentStatus) + " to " + string(d.PaymentStatus),
			}
		}
		s.donations[i] = d
	} else {
		s.donationIdx[d.ID] = len(s.donations)
		s.donations = append(s.donations, d)
	}

	s.recalcRaisedLocked(d.Target)
	return d, nil
}

// MarkDonationStatus applies a payment status transition to an existing
// donation and recomputes the bound project's raised amount.
func (s *Store) MarkDonationStatus(id string, status core.PaymentStatus) (core.Donation, error) {
	if !status.Valid() {
		return core.Donation{}, &core.ValidationError{Msg: "invalid payment status " + string(status)}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.donationIdx[id]
	if !ok {
		return core.Donation{}, core.ErrNotFound
	}
	d := s.donations[i]
	if d.PaymentStatus == status {
		return d, nil
	}
	if !d.PaymentStatus.CanTransitionTo(status) {
		return core.Donation{}, &core.ValidationError{
			Msg: "payment status cannot move from " + string(d.PaymentStatus) + " to " + string(status),
		}
	}
	d.PaymentStatus = status
	s.donations[i] = d
	s.recalcRaisedLocked(d.Target)
	return d, nil
}

// UpsertExpenditure inserts or replaces an expenditure. The project must
// exist; so must the funding donation when one is cited.
func (s *Store) UpsertExpenditure(e core.Expenditure) (core.Expenditure, error) {
	if err := e.Validate(); err != nil {
		return core.Expenditure{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectIdx[e.ProjectID]; !ok {
		return core.Expenditure{}, &core.ReferentialIntegrityError{Kind: "project", Ref: e.ProjectID}
	}
	if e.DonationID != "" {
		if _, ok := s.donationIdx[e.DonationID]; !ok {
			return core.Expenditure{}, &core.ReferentialIntegrityError{Kind: "donation", Ref: e.DonationID}
		}
	}

	if e.ID == "" {
		e.ID = newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	if i, ok := s.expenditureIdx[e.ID]; ok {
		s.expenditures[i] = e
	} else {
		s.expenditureIdx[e.ID] = len(s.expenditures)
		s.expenditures = append(s.expenditures, e)
	}
	return e, nil
}

// UpsertProjectUpdate inserts or replaces a progress note for a project.
func (s *Store) UpsertProjectUpdate(u core.ProjectUpdate) (core.ProjectUpdate, error) {
	if err := u.Validate(); err != nil {
		return core.ProjectUpdate{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projectIdx[u.ProjectID]; !ok {
		return core.ProjectUpdate{}, &core.ReferentialIntegrityError{Kind: "project", Ref: u.ProjectID}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	if i, ok := s.updateIdx[u.ID]; ok {
		s.updates[i] = u
	} else {
		s.updateIdx[u.ID] = len(s.updates)
		s.updates = append(s.updates, u)
	}
	return u, nil
}

// UpsertUser inserts or replaces a user.
func (s *Store) UpsertUser(u core.User) (core.User, error) {
	if err := u.Validate(); err != nil {
		return core.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == "" {
		u.ID = newID()
	}
	if u.JoinedAt.IsZero() {
		u.JoinedAt = s.now()
	}
	if i, ok := s.userIdx[u.ID]; ok {
		s.users[i] = u
	} else {
		s.userIdx[u.ID] = len(s.users)
		s.users = append(s.users, u)
	}
	return u, nil
}

// UpsertMicropost inserts or replaces a micropost. The author must exist.
func (s *Store) UpsertMicropost(m core.Micropost) (core.Micropost, error) {
	if err := m.Validate(); err != nil {
		return core.Micropost{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userIdx[m.AuthorID]; !ok {
		return core.Micropost{}, &core.ReferentialIntegrityError{Kind: "user", Ref: m.AuthorID}
	}
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	if i, ok := s.micropostIdx[m.ID]; ok {
		s.microposts[i] = m
	} else {
		s.micropostIdx[m.ID] = len(s.microposts)
		s.microposts = append(s.microposts, m)
	}
	return m, nil
}

// GetProject returns the project with the given id or ErrNotFound.
func (s *Store) GetProject(id string) (core.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.projectIdx[id]
	if !ok {
		return core.Project{}, core.ErrNotFound
	}
	return s.projects[i], nil
}

// GetDonation returns the donation with the given id or ErrNotFound.
func (s *Store) GetDonation(id string) (core.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.donationIdx[id]
	if !ok {
		return core.Donation{}, core.ErrNotFound
	}
	return s.donations[i], nil
}

// GetUser returns the user with the given id or ErrNotFound.
func (s *Store) GetUser(id string) (core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.userIdx[id]
	if !ok {
		return core.User{}, core.ErrNotFound
	}
	return s.users[i], nil
}

// ListProjects returns all projects in insertion order.
func (s *Store) ListProjects() []core.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Project(nil), s.projects...)
}

// ListDonations returns all donations in insertion order.
func (s *Store) ListDonations() []core.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Donation(nil), s.donations...)
}

// ListExpenditures returns all expenditures in insertion order.
func (s *Store) ListExpenditures() []core.Expenditure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Expenditure(nil), s.expenditures...)
}

// DonationsForProject returns the donations bound to the given project.
func (s *Store) DonationsForProject(projectID string) []core.Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Donation
	for _, d := range s.donations {
		if pid, ok := d.Target.ProjectID(); ok && pid == projectID {
			out = append(out, d)
		}
	}
	return out
}

// ExpendituresForProject returns the expenditures attributed to a project.
func (s *Store) ExpendituresForProject(projectID string) []core.Expenditure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Expenditure
	for _, e := range s.expenditures {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out
}

// ExpendituresForDonation returns the expenditures citing a donation as
// their funding source.
func (s *Store) ExpendituresForDonation(donationID string) []core.Expenditure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Expenditure
	for _, e := range s.expenditures {
		if e.DonationID == donationID {
			out = append(out, e)
		}
	}
	return out
}

// UpdatesForProject returns the progress notes for a project.
func (s *Store) UpdatesForProject(projectID string) []core.ProjectUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.ProjectUpdate
	for _, u := range s.updates {
		if u.ProjectID == projectID {
			out = append(out, u)
		}
	}
	return out
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers() []core.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.User(nil), s.users...)
}

// ListMicroposts returns all microposts in insertion order.
func (s *Store) ListMicroposts() []core.Micropost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Micropost(nil), s.microposts...)
}

// DeleteProject removes a project. The delete is strict: any donation,
// expenditure or project update still referencing the project blocks it
// with HasDependentRecordsError and the ledger is left unchanged.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.projectIdx[id]
	if !ok {
		return core.ErrNotFound
	}

	deps := 0
	for _, d := range s.donations {
		if pid, ok := d.Target.ProjectID(); ok && pid == id {
			deps++
		}
	}
	for _, e := range s.expenditures {
		if e.ProjectID == id {
			deps++
		}
	}
	for _, u := range s.updates {
		if u.ProjectID == id {
			deps++
		}
	}
	if deps > 0 {
		return &core.HasDependentRecordsError{Kind: "project", ID: id, Dependents: deps}
	}

	s.projects = append(s.projects[:i], s.projects[i+1:]...)
	delete(s.projectIdx, id)
	for j := i; j < len(s.projects); j++ {
		s.projectIdx[s.projects[j].ID] = j
	}
	return nil
}

// DeleteDonation removes a donation unless an expenditure cites it as its
// funding source. Same strict policy as DeleteProject.
func (s *Store) DeleteDonation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.donationIdx[id]
	if !ok {
		return core.ErrNotFound
	}

	deps := 0
	for _, e := range s.expenditures {
		if e.DonationID == id {
			deps++
		}
	}
	if deps > 0 {
		return &core.HasDependentRecordsError{Kind: "donation", ID: id, Dependents: deps}
	}

	target := s.donations[i].Target
	s.donations = append(s.donations[:i], s.donations[i+1:]...)
	delete(s.donationIdx, id)
	for j := i; j < len(s.donations); j++ {
		s.donationIdx[s.donations[j].ID] = j
	}
	s.recalcRaisedLocked(target)
	return nil
}

// DeleteUser removes a user unless microposts still reference the author.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.userIdx[id]
	if !ok {
		return core.ErrNotFound
	}
	deps := 0
	for _, m := range s.microposts {
		if m.AuthorID == id {
			deps++
		}
	}
	if deps > 0 {
		return &core.HasDependentRecordsError{Kind: "user", ID: id, Dependents: deps}
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	delete(s.userIdx, id)
	for j := i; j < len(s.users); j++ {
		s.userIdx[s.users[j].ID] = j
	}
	return nil
}

// recalcRaisedLocked recomputes the raised amount of the project bound to
// target as the sum of its completed donations. Caller holds the write lock.
func (s *Store) recalcRaisedLocked(target core.DonationTarget) {
	pid, ok := target.ProjectID()
	if !ok {
		return
	}
	i, ok := s.projectIdx[pid]
	if !ok {
		return
	}
	var raised core.Money
	for _, d := range s.donations {
		dpid, bound := d.Target.ProjectID()
		if bound && dpid == pid && d.PaymentStatus == core.PaymentCompleted {
			raised = raised.Add(d.Amount)
		}
	}
	p := s.projects[i]
	p.RaisedAmount = raised
	p.UpdatedAt = s.now()
	s.projects[i] = p
}
