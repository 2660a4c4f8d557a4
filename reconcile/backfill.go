package reconcile

import (
	"sort"

	"github.com/omnarayansharma777/chronodim/domain"
)

// BackfillHistory recomputes the full type-2 history from scratch. For each
// actor it scans cumulative rows in year order and groups consecutive years
// with an unchanged (quality_class, is_active) pair into one run. The scan is
// deterministic, so re-running it over the same cumulative set yields
// identical output.
//
// Rows with Year > asOf are ignored. A year gap in the cumulative chain
// starts a new run; VerifyHistory reports such chains as broken.
func BackfillHistory(cumulative []*domain.Actor, asOf int) []*domain.ActorSCD {
	byActor := make(map[string][]*domain.Actor)
	for _, row := range cumulative {
		if row.Year > asOf {
			continue
		}
		byActor[row.ActorID] = append(byActor[row.ActorID], row)
	}

	ids := make([]string, 0, len(byActor))
	for id := range byActor {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.ActorSCD
	for _, id := range ids {
		rows := byActor[id]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

		var run *domain.ActorSCD
		for _, row := range rows {
			if run != nil && run.SameState(row) && row.Year == run.EndYear+1 {
				run.EndYear = row.Year
				continue
			}
			if run != nil {
				out = append(out, run)
			}
			run = &domain.ActorSCD{
				ActorID:      row.ActorID,
				StartYear:    row.Year,
				EndYear:      row.Year,
				QualityClass: row.QualityClass,
				IsActive:     row.IsActive,
				AsOfYear:     asOf,
			}
		}
		if run != nil {
			out = append(out, run)
		}
	}
	return out
}
