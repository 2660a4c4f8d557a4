package domain

// QualityClass buckets an actor's most recent yearly average film rating.
type QualityClass string

const (
	ClassTop  QualityClass = "top"
	ClassHigh QualityClass = "high"
	ClassMid  QualityClass = "mid"
	ClassLow  QualityClass = "low"
)

func (c QualityClass) Valid() bool {
	switch c {
	case ClassTop, ClassHigh, ClassMid, ClassLow:
		return true
	}
	return false
}
