package reconcile

import (
	"fmt"
	"sort"

	"github.com/omnarayansharma777/chronodim/domain"
)

// Options tunes the parts of reconciliation the source data does not pin
// down.
type Options struct {
	// DefaultActive is the activity flag assumed for an actor with no prior
	// cumulative record.
	DefaultActive bool
}

// DefaultOptions matches the source model: newly observed actors default to
// active.
func DefaultOptions() Options {
	return Options{DefaultActive: true}
}

// MergeYear combines the previous year's cumulative rows with the requested
// year's snapshot films into the requested year's cumulative rows. It is the
// map-based form of a full outer join on actor_id:
//
//   - actor in both: films appended (copy-on-extend), class recomputed from
//     this year's films only, active.
//   - actor only in prev: everything carried forward, year advances.
//   - actor only in snapshot: first appearance, new chain starts.
//
// Inputs are never mutated. Output is sorted by actor_id. Actors whose
// previous row is older than year-1 fail individually and are skipped.
func MergeYear(prev []*domain.Actor, films []*domain.ActorFilm, year int, opts Options) ([]*domain.Actor, []EntityError) {
	var errs []EntityError

	prevByID := make(map[string]*domain.Actor, len(prev))
	for _, row := range prev {
		if row.Year != year-1 {
			errs = append(errs, EntityError{
				ActorID: row.ActorID,
				Err:     fmt.Errorf("latest cumulative row is for %d, want %d: %w", row.Year, year-1, ErrMissingPriorYear),
			})
			continue
		}
		if _, dup := prevByID[row.ActorID]; dup {
			errs = append(errs, EntityError{
				ActorID: row.ActorID,
				Err:     fmt.Errorf("duplicate cumulative row for year %d: %w", row.Year, ErrInvariantViolation),
			})
			continue
		}
		prevByID[row.ActorID] = row
	}

	currByID := make(map[string][]domain.Film)
	nameByID := make(map[string]string)
	for _, af := range films {
		currByID[af.ActorID] = append(currByID[af.ActorID], domain.Film{
			FilmID: af.FilmID,
			Film:   af.Film,
			Year:   af.Year,
			Votes:  af.Votes,
			Rating: af.Rating,
		})
		nameByID[af.ActorID] = af.ActorName
	}

	failed := make(map[string]bool, len(errs))
	for _, e := range errs {
		failed[e.ActorID] = true
	}

	ids := make([]string, 0, len(prevByID)+len(currByID))
	seen := make(map[string]bool, len(prevByID)+len(currByID))
	for id := range prevByID {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range currByID {
		if !seen[id] && !failed[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	out := make([]*domain.Actor, 0, len(ids))
	for _, id := range ids {
		prevRow := prevByID[id]
		currFilms := currByID[id]

		switch {
		case prevRow != nil && len(currFilms) > 0:
			merged := append(prevRow.CloneFilms(), currFilms...)
			out = append(out, &domain.Actor{
				ActorID:      id,
				Year:         year,
				ActorName:    pickName(nameByID[id], prevRow.ActorName),
				Films:        merged,
				QualityClass: ClassifyRating(AverageRating(currFilms)),
				IsActive:     true,
			})
		case prevRow != nil:
			// No films this year: class and films carry forward. A snapshot
			// with zero films lands here too; its average is undefined.
			out = append(out, &domain.Actor{
				ActorID:      id,
				Year:         year,
				ActorName:    prevRow.ActorName,
				Films:        prevRow.CloneFilms(),
				QualityClass: prevRow.QualityClass,
				IsActive:     NextActive(false, prevRow.IsActive),
			})
		case len(currFilms) > 0:
			out = append(out, &domain.Actor{
				ActorID:      id,
				Year:         year,
				ActorName:    nameByID[id],
				Films:        currFilms,
				QualityClass: ClassifyRating(AverageRating(currFilms)),
				IsActive:     NextActive(true, opts.DefaultActive),
			})
		}
	}
	return out, errs
}

func pickName(current, previous string) string {
	if current != "" {
		return current
	}
	return previous
}
