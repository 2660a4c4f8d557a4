package dimension

import (
	"context"
	"testing"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/data/repos/testutil"
)

func TestActorFilmRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewActorFilmRepo(db, testutil.Logger(t))

	rows := []*domain.ActorFilm{
		{ActorID: "a2", FilmID: "f3", ActorName: "B", Film: "Three", Year: 1915, Votes: 10, Rating: 6.1},
		{ActorID: "a1", FilmID: "f2", ActorName: "A", Film: "Two", Year: 1914, Votes: 20, Rating: 7.9},
		{ActorID: "a1", FilmID: "f1", ActorName: "A", Film: "One", Year: 1914, Votes: 30, Rating: 8.2},
	}
	if _, err := repo.Create(ctx, nil, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByYear(ctx, nil, 1914)
	if err != nil {
		t.Fatalf("GetByYear: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByYear: want 2 rows, got %d", len(got))
	}
	if got[0].FilmID != "f1" || got[1].FilmID != "f2" {
		t.Fatalf("GetByYear must order by actor_id, film_id: %+v", got)
	}

	years, err := repo.Years(ctx, nil)
	if err != nil {
		t.Fatalf("Years: %v", err)
	}
	if len(years) != 2 || years[0] != 1914 || years[1] != 1915 {
		t.Fatalf("Years: got %v", years)
	}
}
