package dimension

import (
	"context"
	"testing"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/data/repos/testutil"
)

func TestActorSCDRepo_UpsertExtendsInPlace(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewActorSCDRepo(db, testutil.Logger(t))

	open := &domain.ActorSCD{ActorID: "a", StartYear: 1, EndYear: 3, QualityClass: domain.ClassTop, IsActive: true, AsOfYear: 3}
	if err := repo.Upsert(ctx, nil, []*domain.ActorSCD{open}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	extended := &domain.ActorSCD{ActorID: "a", StartYear: 1, EndYear: 4, QualityClass: domain.ClassTop, IsActive: true, AsOfYear: 4}
	if err := repo.Upsert(ctx, nil, []*domain.ActorSCD{extended}); err != nil {
		t.Fatalf("Upsert(extend): %v", err)
	}

	rows, err := repo.GetByActor(ctx, nil, "a")
	if err != nil {
		t.Fatalf("GetByActor: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("extend must not duplicate the open row, got %d rows", len(rows))
	}
	if rows[0].EndYear != 4 || rows[0].AsOfYear != 4 {
		t.Fatalf("open row not extended: %+v", rows[0])
	}
}

func TestActorSCDRepo_ReplaceAll(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewActorSCDRepo(db, testutil.Logger(t))

	if err := repo.Upsert(ctx, nil, []*domain.ActorSCD{
		{ActorID: "old", StartYear: 1, EndYear: 2, QualityClass: domain.ClassLow, IsActive: true, AsOfYear: 2},
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	fresh := []*domain.ActorSCD{
		{ActorID: "a", StartYear: 1, EndYear: 3, QualityClass: domain.ClassMid, IsActive: true, AsOfYear: 3},
		{ActorID: "b", StartYear: 2, EndYear: 3, QualityClass: domain.ClassTop, IsActive: true, AsOfYear: 3},
	}
	if err := repo.ReplaceAll(ctx, nil, fresh); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rows, err := repo.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows after replace, got %d", len(rows))
	}
	if rows[0].ActorID != "a" || rows[1].ActorID != "b" {
		t.Fatalf("old rows survived the replace: %+v", rows)
	}
}

func TestActorSCDRepo_DeleteByActors(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewActorSCDRepo(db, testutil.Logger(t))

	if err := repo.Upsert(ctx, nil, []*domain.ActorSCD{
		{ActorID: "keep", StartYear: 1, EndYear: 2, QualityClass: domain.ClassLow, IsActive: true, AsOfYear: 2},
		{ActorID: "drop", StartYear: 1, EndYear: 2, QualityClass: domain.ClassLow, IsActive: true, AsOfYear: 2},
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := repo.DeleteByActors(ctx, nil, []string{"drop"}); err != nil {
		t.Fatalf("DeleteByActors: %v", err)
	}
	rows, err := repo.GetAll(ctx, nil)
	if err != nil || len(rows) != 1 || rows[0].ActorID != "keep" {
		t.Fatalf("got rows=%+v err=%v", rows, err)
	}
}
