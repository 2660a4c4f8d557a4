package reconcile

import (
	"github.com/omnarayansharma777/chronodim/domain"
)

// ClassifyRating maps an average film rating to a quality class. Thresholds
// are fixed and ordered, so the mapping is total and monotonic.
func ClassifyRating(avg float64) domain.QualityClass {
	switch {
	case avg > 8:
		return domain.ClassTop
	case avg > 7:
		return domain.ClassHigh
	case avg > 6:
		return domain.ClassMid
	default:
		return domain.ClassLow
	}
}

// NextActive carries the activity flag across a year boundary: an actor with
// films this year is active, otherwise the previous value sticks.
func NextActive(hasSnapshot, prevActive bool) bool {
	if hasSnapshot {
		return true
	}
	return prevActive
}

// AverageRating is the plain mean over a year's films. Callers must not call
// it with an empty slice; a year with no films has no defined average and
// keeps the carried-forward class instead.
func AverageRating(films []domain.Film) float64 {
	var sum float64
	for _, f := range films {
		sum += f.Rating
	}
	return sum / float64(len(films))
}
