// Package filter selects donation subsets from a ledger snapshot. All
// predicates are optional and AND-combined; filtering is stateless,
// order-preserving and never errors.
package filter

import (
	"time"

	"pamoja/internal/core"
)

// DateRange bounds donation creation times, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// set reports whether both bounds are present. A half-open range imposes
// no constraint; that asymmetry is part of the filtering contract.
func (r DateRange) set() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Spec is a donation filter. Zero-valued fields impose no constraint, so
// the zero Spec matches everything.
type Spec struct {
	Kind      core.DonationKind
	Status    core.PaymentStatus
	Method    core.PaymentMethod
	ProjectID string
	Range     DateRange
}

// IsEmpty reports whether no field constrains the result.
func (s Spec) IsEmpty() bool {
	return s.Kind == "" && s.Status == "" && s.Method == "" &&
		s.ProjectID == "" && !s.Range.set()
}

// Matches reports whether a single donation satisfies every set field.
func (s Spec) Matches(d core.Donation) bool {
	if s.Kind != "" && d.Target.Kind() != s.Kind {
		return false
	}
	if s.Status != "" && d.PaymentStatus != s.Status {
		return false
	}
	if s.Method != "" && d.PaymentMethod != s.Method {
		return false
	}
	if s.ProjectID != "" {
		pid, ok := d.Target.ProjectID()
		if !ok || pid != s.ProjectID {
			return false
		}
	}
	if s.Range.set() {
		if d.CreatedAt.Before(s.Range.Start) || d.CreatedAt.After(s.Range.End) {
			return false
		}
	}
	return true
}

// Apply returns the donations matching spec, in input order. An empty
// spec returns the input unchanged; an empty input yields an empty
// result, never an error.
func Apply(donations []core.Donation, spec Spec) []core.Donation {
	if spec.IsEmpty() {
		return donations
	}
	out := make([]core.Donation, 0, len(donations))
	for _, d := range donations {
		if spec.Matches(d) {
			out = append(out, d)
		}
	}
	return out
}
