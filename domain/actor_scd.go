package domain

import (
	"time"
)

// ActorSCD is one type-2 history row: a maximal run of consecutive years over
// which (quality_class, is_active) stayed constant. StartYear..EndYear is
// inclusive; AsOfYear is the year the row was last computed at.
type ActorSCD struct {
	ActorID      string       `gorm:"column:actor_id;primaryKey" json:"actor_id"`
	StartYear    int          `gorm:"column:start_year;primaryKey" json:"start_year"`
	EndYear      int          `gorm:"column:end_year;not null" json:"end_year"`
	QualityClass QualityClass `gorm:"column:quality_class;not null" json:"quality_class"`
	IsActive     bool         `gorm:"column:is_active;not null" json:"is_active"`
	AsOfYear     int          `gorm:"column:as_of_year;not null;index:idx_actor_scd_as_of" json:"as_of_year"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (ActorSCD) TableName() string { return "actors_history_scd" }

// Open reports whether the row was still running at the given as-of year.
func (s *ActorSCD) Open() bool { return s.EndYear == s.AsOfYear }

// SameState reports whether the row and the cumulative row carry the same
// tracked pair.
func (s *ActorSCD) SameState(a *Actor) bool {
	return s.QualityClass == a.QualityClass && s.IsActive == a.IsActive
}
