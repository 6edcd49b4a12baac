package ledger

import "pamoja/internal/core"

// Snapshot is an immutable copy of the ledger at a point in time. Filter
// and aggregation operations run against snapshots, so reads never race
// with a mutating write to the store.
type Snapshot struct {
	Projects     []core.Project
	Donations    []core.Donation
	Expenditures []core.Expenditure
	Updates      []core.ProjectUpdate
	Users        []core.User
	Microposts   []core.Micropost
}

// Snapshot copies the current ledger under the read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Projects:     append([]core.Project(nil), s.projects...),
		Donations:    append([]core.Donation(nil), s.donations...),
		Expenditures: append([]core.Expenditure(nil), s.expenditures...),
		Updates:      append([]core.ProjectUpdate(nil), s.updates...),
		Users:        append([]core.User(nil), s.users...),
		Microposts:   append([]core.Micropost(nil), s.microposts...),
	}
}
