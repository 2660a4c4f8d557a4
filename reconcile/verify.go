package reconcile

import (
	"fmt"
	"sort"

	"github.com/omnarayansharma777/chronodim/domain"
)

// VerifyHistory checks that each actor's history rows partition
// [first_year, asOf] into contiguous, non-overlapping, maximal runs. One
// EntityError is reported per broken actor; clean actors are unaffected.
func VerifyHistory(rows []*domain.ActorSCD, asOf int) []EntityError {
	byActor := make(map[string][]*domain.ActorSCD)
	for _, r := range rows {
		byActor[r.ActorID] = append(byActor[r.ActorID], r)
	}

	ids := make([]string, 0, len(byActor))
	for id := range byActor {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []EntityError
	for _, id := range ids {
		if err := verifyActor(byActor[id], asOf); err != nil {
			errs = append(errs, EntityError{ActorID: id, Err: err})
		}
	}
	return errs
}

func verifyActor(rows []*domain.ActorSCD, asOf int) error {
	sort.Slice(rows, func(i, j int) bool { return rows[i].StartYear < rows[j].StartYear })

	for i, r := range rows {
		if r.StartYear > r.EndYear {
			return fmt.Errorf("row %d..%d inverted: %w", r.StartYear, r.EndYear, ErrInvariantViolation)
		}
		if r.AsOfYear != asOf {
			return fmt.Errorf("row %d..%d has as_of_year %d, want %d: %w", r.StartYear, r.EndYear, r.AsOfYear, asOf, ErrInvariantViolation)
		}
		if i == 0 {
			continue
		}
		prev := rows[i-1]
		if r.StartYear != prev.EndYear+1 {
			return fmt.Errorf("rows %d..%d and %d..%d not contiguous: %w",
				prev.StartYear, prev.EndYear, r.StartYear, r.EndYear, ErrInvariantViolation)
		}
		if prev.QualityClass == r.QualityClass && prev.IsActive == r.IsActive {
			return fmt.Errorf("rows %d..%d and %d..%d not maximal: %w",
				prev.StartYear, prev.EndYear, r.StartYear, r.EndYear, ErrInvariantViolation)
		}
	}
	if last := rows[len(rows)-1]; last.EndYear != asOf {
		return fmt.Errorf("history ends at %d, want %d: %w", last.EndYear, asOf, ErrInvariantViolation)
	}
	return nil
}
