package domain

import (
	"time"
)

// ActorFilm is one source row: a single film credited to an actor in one
// year. The snapshot store owns this table; the reconciler only reads it.
type ActorFilm struct {
	ActorID   string    `gorm:"column:actor_id;primaryKey" json:"actor_id"`
	FilmID    string    `gorm:"column:film_id;primaryKey" json:"film_id"`
	ActorName string    `gorm:"column:actor_name;not null" json:"actor_name"`
	Film      string    `gorm:"column:film;not null" json:"film"`
	Year      int       `gorm:"column:year;not null;index:idx_actor_film_year" json:"year"`
	Votes     int       `gorm:"column:votes;not null" json:"votes"`
	Rating    float64   `gorm:"column:rating;not null" json:"rating"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ActorFilm) TableName() string { return "actor_films" }

// Film is the value stored inside an actor's accumulated films array.
type Film struct {
	FilmID string  `json:"film_id"`
	Film   string  `json:"film"`
	Year   int     `json:"year"`
	Votes  int     `json:"votes"`
	Rating float64 `json:"rating"`
}
