package reconcile

import (
	"fmt"
	"sort"

	"github.com/omnarayansharma777/chronodim/domain"
)

// AdvanceHistory patches prior history forward by one year without a full
// recompute. prior is the complete history set as of year-1; current is the
// cumulative rows for the requested year. Per actor:
//
//   - no history yet: a new run opens at start_year = end_year = year.
//   - the open run (end_year = year-1) still matches the cumulative pair:
//     it extends in place to end_year = year.
//   - the pair changed: the open run stays closed at year-1 and a new run
//     opens at year.
//
// Every emitted row carries as_of_year = year, carried-through closed rows
// included, so advancing year by year reproduces BackfillHistory exactly.
// Re-running a year that was already advanced is a no-op for the actors it
// covered. Actors whose chains have holes fail individually; their prior
// rows are withheld from the output so the stored history is left untouched.
func AdvanceHistory(prior []*domain.ActorSCD, current []*domain.Actor, year int) ([]*domain.ActorSCD, []EntityError) {
	var errs []EntityError

	priorByActor := make(map[string][]*domain.ActorSCD)
	for _, row := range prior {
		priorByActor[row.ActorID] = append(priorByActor[row.ActorID], row)
	}

	currByActor := make(map[string]*domain.Actor, len(current))
	for _, row := range current {
		if row.Year != year {
			errs = append(errs, EntityError{
				ActorID: row.ActorID,
				Err:     fmt.Errorf("cumulative row is for %d, want %d: %w", row.Year, year, ErrMissingPriorYear),
			})
			continue
		}
		currByActor[row.ActorID] = row
	}

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.ActorID] = true
	}
	fail := func(id string, err error) {
		errs = append(errs, EntityError{ActorID: id, Err: err})
		failed[id] = true
	}

	// An actor with history but no cumulative row for this year means the
	// merger never ran (or failed) for it; extending would leave a hole. A
	// chain whose open run already ends at the requested year was advanced
	// by an earlier run, so re-running the period carries it through as-is.
	advanced := make(map[string]bool)
	for id, rows := range priorByActor {
		if failed[id] {
			continue
		}
		cur, ok := currByActor[id]
		if !ok {
			fail(id, fmt.Errorf("no cumulative record for year %d: %w", year, ErrMissingPriorYear))
			continue
		}
		var open, done *domain.ActorSCD
		for _, r := range rows {
			switch {
			case r.EndYear == year-1:
				open = r
			case r.EndYear == year:
				done = r
			case r.EndYear > year:
				fail(id, fmt.Errorf("history row %d..%d already past year %d: %w", r.StartYear, r.EndYear, year, ErrInvariantViolation))
			}
			if failed[id] {
				break
			}
		}
		if failed[id] {
			continue
		}
		switch {
		case done != nil:
			if !done.SameState(cur) {
				fail(id, fmt.Errorf("history row %d..%d disagrees with cumulative record for %d: %w", done.StartYear, done.EndYear, year, ErrInvariantViolation))
				continue
			}
			advanced[id] = true
		case open == nil:
			fail(id, fmt.Errorf("no open history row at year %d: %w", year-1, ErrMissingPriorYear))
		}
	}

	ids := make([]string, 0, len(priorByActor)+len(currByActor))
	seen := make(map[string]bool)
	for id := range priorByActor {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range currByActor {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []*domain.ActorSCD
	for _, id := range ids {
		if failed[id] {
			continue
		}
		cur := currByActor[id]
		rows := priorByActor[id]

		if len(rows) == 0 {
			out = append(out, &domain.ActorSCD{
				ActorID:      id,
				StartYear:    year,
				EndYear:      year,
				QualityClass: cur.QualityClass,
				IsActive:     cur.IsActive,
				AsOfYear:     year,
			})
			continue
		}

		sort.Slice(rows, func(i, j int) bool { return rows[i].StartYear < rows[j].StartYear })
		if advanced[id] {
			for _, r := range rows {
				out = append(out, &domain.ActorSCD{
					ActorID:      r.ActorID,
					StartYear:    r.StartYear,
					EndYear:      r.EndYear,
					QualityClass: r.QualityClass,
					IsActive:     r.IsActive,
					AsOfYear:     year,
				})
			}
			continue
		}
		changed := false
		for _, r := range rows {
			next := &domain.ActorSCD{
				ActorID:      r.ActorID,
				StartYear:    r.StartYear,
				EndYear:      r.EndYear,
				QualityClass: r.QualityClass,
				IsActive:     r.IsActive,
				AsOfYear:     year,
			}
			if r.EndYear == year-1 {
				if r.SameState(cur) {
					next.EndYear = year
				} else {
					changed = true
				}
			}
			out = append(out, next)
		}
		if changed {
			out = append(out, &domain.ActorSCD{
				ActorID:      id,
				StartYear:    year,
				EndYear:      year,
				QualityClass: cur.QualityClass,
				IsActive:     cur.IsActive,
				AsOfYear:     year,
			})
		}
	}
	return out, errs
}
