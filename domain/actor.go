package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Actor is the cumulative row for one actor at one year: the full film
// history accumulated up to and including Year, plus the class and activity
// flag derived for that year. Rows are append-only across years.
type Actor struct {
	ActorID      string                    `gorm:"column:actor_id;primaryKey" json:"actor_id"`
	Year         int                       `gorm:"column:year;primaryKey" json:"year"`
	ActorName    string                    `gorm:"column:actor_name;not null" json:"actor_name"`
	Films        datatypes.JSONSlice[Film] `gorm:"column:films" json:"films"`
	QualityClass QualityClass              `gorm:"column:quality_class;not null" json:"quality_class"`
	IsActive     bool                      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time                 `gorm:"not null" json:"created_at"`
}

func (Actor) TableName() string { return "actors" }

// CloneFilms returns a copy of the accumulated films so an extended row never
// aliases its predecessor's backing array.
func (a *Actor) CloneFilms() []Film {
	out := make([]Film, len(a.Films))
	copy(out, a.Films)
	return out
}
