package chronodim

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/reconcile"
)

var engineSeq atomic.Int64

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Driver = "sqlite"
	cfg.DSN = fmt.Sprintf("file:enginetest%d?mode=memory&cache=shared", engineSeq.Add(1))
	cfg.LogMode = "test"
	cfg.Workers = 2
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to open engine: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func film(actorID, filmID string, year int, rating float64) *domain.ActorFilm {
	return &domain.ActorFilm{
		ActorID:   actorID,
		FilmID:    filmID,
		ActorName: "Actor " + actorID,
		Film:      "Film " + filmID,
		Year:      year,
		Votes:     1000,
		Rating:    rating,
	}
}

type span struct {
	start, end int
	class      domain.QualityClass
	active     bool
	asOf       int
}

func spans(rows []*domain.ActorSCD) []span {
	out := make([]span, 0, len(rows))
	for _, r := range rows {
		out = append(out, span{r.StartYear, r.EndYear, r.QualityClass, r.IsActive, r.AsOfYear})
	}
	return out
}

func checkTimeline(t *testing.T, e *Engine, actorID string, want []span) {
	t.Helper()
	rows, err := e.ActorTimeline(context.Background(), actorID)
	if err != nil {
		t.Fatalf("timeline %s: %v", actorID, err)
	}
	got := spans(rows)
	if len(got) != len(want) {
		t.Fatalf("timeline %s: got %+v, want %+v", actorID, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("timeline %s row %d: got %+v, want %+v", actorID, i, got[i], want[i])
		}
	}
}

func TestEngineReconcileAll(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	// a1 debuts strong at year 1, sits out year 2, comes back weak at year 3
	// and then disappears. b2 only shows up at year 5.
	err := e.ImportFilms(ctx, []*domain.ActorFilm{
		film("a1", "f1", 1, 9.0),
		film("a1", "f2", 1, 9.0),
		film("a1", "f3", 3, 5.0),
		film("b2", "f4", 5, 7.5),
	})
	if err != nil {
		t.Fatalf("import films: %v", err)
	}

	sums, err := e.ReconcileAll(ctx)
	if err != nil {
		t.Fatalf("reconcile all: %v", err)
	}
	if len(sums) != 5 {
		t.Fatalf("want 5 yearly runs, got %d", len(sums))
	}
	for _, s := range sums {
		if s.Status != domain.RunStatusSucceeded || len(s.Failed) != 0 {
			t.Fatalf("year %d: status %s, failed %v", s.Year, s.Status, s.Failed)
		}
	}

	// Cumulative rows at the latest year: the film arrays accumulate while
	// the class reflects only the latest year an actor actually worked.
	cum, err := e.repos.Actors.GetByYear(ctx, nil, 5)
	if err != nil {
		t.Fatalf("load cumulative: %v", err)
	}
	if len(cum) != 2 {
		t.Fatalf("want 2 cumulative rows at year 5, got %d", len(cum))
	}
	a1, b2 := cum[0], cum[1]
	if a1.ActorID != "a1" || len(a1.Films) != 3 || a1.QualityClass != domain.ClassLow || !a1.IsActive {
		t.Fatalf("unexpected a1 row: %+v", a1)
	}
	if b2.ActorID != "b2" || len(b2.Films) != 1 || b2.QualityClass != domain.ClassHigh || !b2.IsActive {
		t.Fatalf("unexpected b2 row: %+v", b2)
	}

	// The idle years leave (class, is_active) untouched, so they fold into
	// the surrounding runs.
	checkTimeline(t, e, "a1", []span{
		{1, 2, domain.ClassTop, true, 5},
		{3, 5, domain.ClassLow, true, 5},
	})
	checkTimeline(t, e, "b2", []span{
		{5, 5, domain.ClassHigh, true, 5},
	})

	dist, err := e.QualityDistribution(ctx, 5)
	if err != nil {
		t.Fatalf("quality distribution: %v", err)
	}
	counts := map[domain.QualityClass]int64{}
	for _, c := range dist {
		counts[c.QualityClass] = c.Count
	}
	if counts[domain.ClassLow] != 1 || counts[domain.ClassHigh] != 1 {
		t.Fatalf("unexpected distribution: %+v", dist)
	}

	active, err := e.ActiveCount(ctx, 5)
	if err != nil {
		t.Fatalf("active count: %v", err)
	}
	if active != 2 {
		t.Fatalf("want 2 active actors at year 5, got %d", active)
	}
}

// A full rebuild from the cumulative table must land on the same history the
// year-by-year runs produced.
func TestEngineBackfillMatchesIncremental(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	err := e.ImportFilms(ctx, []*domain.ActorFilm{
		film("a1", "f1", 1, 9.0),
		film("a1", "f2", 3, 5.0),
		film("b2", "f3", 2, 7.5),
		film("b2", "f4", 4, 6.5),
	})
	if err != nil {
		t.Fatalf("import films: %v", err)
	}
	if _, err := e.ReconcileAll(ctx); err != nil {
		t.Fatalf("reconcile all: %v", err)
	}

	before, err := e.repos.ActorSCD.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}

	sum, err := e.BackfillHistory(ctx, 4)
	if err != nil {
		t.Fatalf("backfill: %v", err)
	}
	if sum.Status != domain.RunStatusSucceeded {
		t.Fatalf("backfill status %s, failed %v", sum.Status, sum.Failed)
	}

	after, err := e.repos.ActorSCD.GetAll(ctx, nil)
	if err != nil {
		t.Fatalf("reload history: %v", err)
	}
	if len(before) == 0 {
		t.Fatal("incremental runs produced no history")
	}
	bs, as := spans(before), spans(after)
	if len(bs) != len(as) {
		t.Fatalf("backfill changed row count: %d != %d", len(bs), len(as))
	}
	for i := range bs {
		if bs[i] != as[i] {
			t.Fatalf("row %d diverged: incremental %+v, backfill %+v", i, bs[i], as[i])
		}
	}
}

func TestEngineRunPeriodRerun(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	err := e.ImportFilms(ctx, []*domain.ActorFilm{
		film("a1", "f1", 1, 9.0),
		film("a1", "f2", 2, 5.0),
	})
	if err != nil {
		t.Fatalf("import films: %v", err)
	}
	if _, err := e.ReconcileAll(ctx); err != nil {
		t.Fatalf("reconcile all: %v", err)
	}

	sum, err := e.RunPeriod(ctx, 2)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if sum.Status != domain.RunStatusSucceeded || len(sum.Failed) != 0 {
		t.Fatalf("re-run status %s, failed %v", sum.Status, sum.Failed)
	}

	checkTimeline(t, e, "a1", []span{
		{1, 1, domain.ClassTop, true, 2},
		{2, 2, domain.ClassLow, true, 2},
	})
}

// Skipping a year breaks the chains; the run reports every affected actor and
// leaves the stored history untouched, and running the missing years repairs
// everything without manual cleanup.
func TestEngineSkippedYearFailsThenRepairs(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	err := e.ImportFilms(ctx, []*domain.ActorFilm{
		film("ok", "f1", 1, 8.5),
		film("late", "f2", 1, 6.5),
		film("ok", "f3", 3, 5.5),
	})
	if err != nil {
		t.Fatalf("import films: %v", err)
	}

	if _, err := e.RunPeriod(ctx, 1); err != nil {
		t.Fatalf("year 1: %v", err)
	}

	sum, err := e.RunPeriod(ctx, 3)
	if err != nil {
		t.Fatalf("year 3 must not abort: %v", err)
	}
	if sum.Status != domain.RunStatusFailed {
		t.Fatalf("want failed run, got %s", sum.Status)
	}
	hit := map[string]bool{}
	for _, fe := range sum.Failed {
		hit[fe.ActorID] = true
		if !errors.Is(fe, reconcile.ErrMissingPriorYear) {
			t.Fatalf("want ErrMissingPriorYear, got %v", fe)
		}
	}
	if !hit["ok"] || !hit["late"] {
		t.Fatalf("want both actors reported, got %v", sum.Failed)
	}

	// Year 1 history survives the failed run.
	checkTimeline(t, e, "ok", []span{{1, 1, domain.ClassTop, true, 1}})

	for _, y := range []int{2, 3} {
		s, err := e.RunPeriod(ctx, y)
		if err != nil {
			t.Fatalf("repair year %d: %v", y, err)
		}
		if s.Status != domain.RunStatusSucceeded {
			t.Fatalf("repair year %d: status %s, failed %v", y, s.Status, s.Failed)
		}
	}
	checkTimeline(t, e, "ok", []span{
		{1, 2, domain.ClassTop, true, 3},
		{3, 3, domain.ClassLow, true, 3},
	})
	checkTimeline(t, e, "late", []span{
		{1, 3, domain.ClassMid, true, 3},
	})

	// Both the failed and the repaired attempt left an audit row.
	runs, err := e.repos.ReconcileRuns.GetByYear(ctx, nil, 3)
	if err != nil {
		t.Fatalf("load runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("want 2 audit rows for year 3, got %d", len(runs))
	}
	if runs[0].Status != domain.RunStatusFailed || len(runs[0].Errors) == 0 {
		t.Fatalf("first run must be failed with errors, got %+v", runs[0])
	}
	if runs[1].Status != domain.RunStatusSucceeded || runs[1].Failed != 0 {
		t.Fatalf("second run must be clean, got %+v", runs[1])
	}
}

func TestEngineBuildGraphAndLeaders(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t)

	games := []*domain.Game{
		{GameID: "g1", Season: 2022, HomeTeamID: "t1", VisitorTeamID: "t2", PtsHome: 101, PtsAway: 99, HomeTeamWins: true},
	}
	pts := func(v int) *int { return &v }
	details := []*domain.GameDetail{
		{GameID: "g1", PlayerID: "p1", TeamID: "t1", PlayerName: "One", Pts: pts(30)},
		{GameID: "g1", PlayerID: "p2", TeamID: "t1", PlayerName: "Two", Pts: pts(10)},
		{GameID: "g1", PlayerID: "p3", TeamID: "t2", PlayerName: "Three", Pts: pts(20)},
		{GameID: "g1", PlayerID: "p4", TeamID: "t2", PlayerName: "Bench"},
	}
	teams := []*domain.Team{
		{TeamID: "t1", Abbreviation: "AAA", Nickname: "Alphas"},
		{TeamID: "t2", Abbreviation: "BBB", Nickname: "Betas"},
	}
	if err := e.ImportGameData(ctx, games, details, teams); err != nil {
		t.Fatalf("import game data: %v", err)
	}

	sum, err := e.BuildGraph(ctx)
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	// 1 game + 2 teams + 3 players who logged minutes; p4 never played.
	if sum.Vertices != 6 {
		t.Fatalf("want 6 vertices, got %d", sum.Vertices)
	}
	// 3 plays_in edges plus 3 player pairs.
	if sum.Edges != 6 {
		t.Fatalf("want 6 edges, got %d", sum.Edges)
	}

	leaders, err := e.PointsLeaders(ctx, 2)
	if err != nil {
		t.Fatalf("points leaders: %v", err)
	}
	if len(leaders) != 2 {
		t.Fatalf("want 2 leaders, got %+v", leaders)
	}
	if leaders[0].PlayerID != "p1" || leaders[0].TotalPoints != 30 || leaders[0].PointsPerGame != 30 {
		t.Fatalf("unexpected top scorer: %+v", leaders[0])
	}
	if leaders[1].PlayerID != "p3" || leaders[1].TotalPoints != 20 {
		t.Fatalf("unexpected runner-up: %+v", leaders[1])
	}
}
