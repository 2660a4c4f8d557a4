// Package chronodim maintains a cumulative actor dimension and its type-2
// history from yearly film snapshots, alongside the relational sports graph
// projected from raw game data. It is a library: callers hand it a store and
// invoke runs; there is no server, no CLI, and no concurrent-writer support.
// Reconciliation runs must be serialized by the caller; reads of committed
// years may proceed at any time.
package chronodim

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/data/repos"
	"github.com/omnarayansharma777/chronodim/internal/db"
	"github.com/omnarayansharma777/chronodim/internal/graphbuild"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
	"github.com/omnarayansharma777/chronodim/internal/reporting"
	"github.com/omnarayansharma777/chronodim/reconcile"
)

// Engine owns the cumulative and history tables and runs reconciliation
// against them.
type Engine struct {
	cfg   Config
	gdb   *gorm.DB
	log   *logger.Logger
	repos *repos.Set
}

// RunSummary reports one reconciliation run. Failed carries the per-actor
// errors; a non-empty Failed list never aborts the rest of the batch.
type RunSummary struct {
	RunID       uuid.UUID               `json:"run_id"`
	Kind        string                  `json:"kind"`
	Year        int                     `json:"year"`
	Processed   int                     `json:"processed"`
	HistoryRows int                     `json:"history_rows"`
	Status      string                  `json:"status"`
	Failed      []reconcile.EntityError `json:"failed,omitempty"`
}

// GraphSummary reports one graph rebuild.
type GraphSummary struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

func New(cfg Config) (*Engine, error) {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	gdb, err := db.Open(cfg.Driver, cfg.DSN, log)
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:   cfg,
		gdb:   gdb,
		log:   log.With("component", "engine"),
		repos: repos.NewSet(gdb, log),
	}, nil
}

func (e *Engine) Close() error {
	e.log.Sync()
	return db.Close(e.gdb)
}

// ImportFilms loads snapshot rows into the source table. The snapshot store
// is normally populated out of band; this is the programmatic path.
func (e *Engine) ImportFilms(ctx context.Context, rows []*domain.ActorFilm) error {
	_, err := e.repos.ActorFilms.Create(ctx, nil, rows)
	return err
}

// ImportGameData loads the raw sports tables the graph builder reads.
func (e *Engine) ImportGameData(ctx context.Context, games []*domain.Game, details []*domain.GameDetail, teams []*domain.Team) error {
	return e.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := e.repos.Games.Create(ctx, tx, games); err != nil {
			return fmt.Errorf("import games: %w", err)
		}
		if _, err := e.repos.GameDetails.Create(ctx, tx, details); err != nil {
			return fmt.Errorf("import game details: %w", err)
		}
		if _, err := e.repos.Teams.Create(ctx, tx, teams); err != nil {
			return fmt.Errorf("import teams: %w", err)
		}
		return nil
	})
}

// RunPeriod reconciles one year: it merges the prior year's cumulative rows
// with the year's snapshot into new cumulative rows, then advances the
// history table. Re-running the same year overwrites the same rows with the
// same values. Actors with broken chains fail individually and are reported
// in the summary.
func (e *Engine) RunPeriod(ctx context.Context, year int) (*RunSummary, error) {
	started := time.Now()
	log := e.log.With("run", "period", "year", year)

	var entErrs []reconcile.EntityError

	stale, err := e.repos.Actors.StaleActorIDs(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("detect stale actors: %w", err)
	}
	staleSet := make(map[string]bool, len(stale))
	for _, id := range stale {
		staleSet[id] = true
		entErrs = append(entErrs, reconcile.EntityError{
			ActorID: id,
			Err:     fmt.Errorf("no cumulative record for year %d: %w", year-1, reconcile.ErrMissingPriorYear),
		})
	}

	prev, err := e.repos.Actors.GetByYear(ctx, nil, year-1)
	if err != nil {
		return nil, fmt.Errorf("load cumulative year %d: %w", year-1, err)
	}
	films, err := e.repos.ActorFilms.GetByYear(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("load snapshot year %d: %w", year, err)
	}
	if len(staleSet) > 0 {
		kept := films[:0]
		for _, f := range films {
			if !staleSet[f.ActorID] {
				kept = append(kept, f)
			}
		}
		films = kept
	}

	merged, mergeErrs := e.mergeParallel(ctx, prev, films, year)
	entErrs = append(entErrs, mergeErrs...)

	prior, err := e.repos.ActorSCD.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var history []*domain.ActorSCD
	bootstrap := len(prior) == 0
	if bootstrap {
		// First run against this store: derive the history from every
		// cumulative row seen so far instead of patching forward.
		older, err := e.repos.Actors.GetThroughYear(ctx, nil, year-1)
		if err != nil {
			return nil, fmt.Errorf("load cumulative through %d: %w", year-1, err)
		}
		history = reconcile.BackfillHistory(append(older, merged...), year)
	} else {
		var advErrs []reconcile.EntityError
		history, advErrs = reconcile.AdvanceHistory(prior, merged, year)
		entErrs = append(entErrs, advErrs...)
	}

	entErrs = append(entErrs, reconcile.VerifyHistory(history, year)...)

	err = e.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.repos.Actors.Upsert(ctx, tx, merged); err != nil {
			return fmt.Errorf("persist cumulative rows: %w", err)
		}
		if bootstrap {
			return e.repos.ActorSCD.ReplaceAll(ctx, tx, history)
		}
		return e.repos.ActorSCD.Upsert(ctx, tx, history)
	})
	if err != nil {
		return nil, err
	}

	summary := e.finishRun(ctx, log, domain.RunKindPeriod, year, started, len(merged), len(history), entErrs)
	return summary, nil
}

// BackfillHistory rebuilds the whole history table from the cumulative rows
// up to throughYear. It is idempotent and is the repair path after per-actor
// failures.
func (e *Engine) BackfillHistory(ctx context.Context, throughYear int) (*RunSummary, error) {
	started := time.Now()
	log := e.log.With("run", "backfill", "through", throughYear)

	cumulative, err := e.repos.Actors.GetThroughYear(ctx, nil, throughYear)
	if err != nil {
		return nil, fmt.Errorf("load cumulative through %d: %w", throughYear, err)
	}

	rows := reconcile.BackfillHistory(cumulative, throughYear)
	entErrs := reconcile.VerifyHistory(rows, throughYear)

	err = e.gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return e.repos.ActorSCD.ReplaceAll(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("persist history: %w", err)
	}

	summary := e.finishRun(ctx, log, domain.RunKindBackfill, throughYear, started, len(cumulative), len(rows), entErrs)
	return summary, nil
}

// ReconcileAll walks every year from the earliest snapshot to the latest,
// running one period reconciliation per year. Years with no snapshots still
// run so carried-forward rows keep the chains contiguous.
func (e *Engine) ReconcileAll(ctx context.Context) ([]*RunSummary, error) {
	years, err := e.repos.ActorFilms.Years(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list snapshot years: %w", err)
	}
	if len(years) == 0 {
		return nil, nil
	}

	var out []*RunSummary
	for y := years[0]; y <= years[len(years)-1]; y++ {
		s, err := e.RunPeriod(ctx, y)
		if err != nil {
			return out, fmt.Errorf("year %d: %w", y, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// BuildGraph rebuilds the vertex and edge tables from the raw sports tables.
func (e *Engine) BuildGraph(ctx context.Context) (*GraphSummary, error) {
	out, err := graphbuild.Build(ctx, graphbuild.Deps{
		DB:       e.gdb,
		Log:      e.log,
		Games:    e.repos.Games,
		Details:  e.repos.GameDetails,
		Teams:    e.repos.Teams,
		Vertices: e.repos.Vertices,
		Edges:    e.repos.Edges,
	})
	if err != nil {
		return nil, err
	}
	return &GraphSummary{Vertices: out.Vertices, Edges: out.Edges}, nil
}

func (e *Engine) QualityDistribution(ctx context.Context, year int) ([]domain.ClassCount, error) {
	return reporting.QualityDistribution(ctx, e.gdb, year)
}

func (e *Engine) ActiveCount(ctx context.Context, year int) (int64, error) {
	return reporting.ActiveCount(ctx, e.gdb, year)
}

func (e *Engine) ActorTimeline(ctx context.Context, actorID string) ([]*domain.ActorSCD, error) {
	return reporting.ActorTimeline(ctx, e.repos.ActorSCD, actorID)
}

func (e *Engine) PointsLeaders(ctx context.Context, limit int) ([]domain.PointsLeader, error) {
	return reporting.PointsLeaders(ctx, e.repos.Vertices, limit)
}

func (e *Engine) opts() reconcile.Options {
	return reconcile.Options{DefaultActive: e.cfg.DefaultActive}
}

// mergeParallel shards actors across workers. Each actor's merge touches only
// its own rows, so shards share nothing but the output slice.
func (e *Engine) mergeParallel(ctx context.Context, prev []*domain.Actor, films []*domain.ActorFilm, year int) ([]*domain.Actor, []reconcile.EntityError) {
	workers := e.cfg.Workers
	if workers <= 1 || len(prev)+len(films) < 2 {
		return reconcile.MergeYear(prev, films, year, e.opts())
	}

	prevShards := make([][]*domain.Actor, workers)
	filmShards := make([][]*domain.ActorFilm, workers)
	for _, row := range prev {
		s := shardFor(row.ActorID, workers)
		prevShards[s] = append(prevShards[s], row)
	}
	for _, f := range films {
		s := shardFor(f.ActorID, workers)
		filmShards[s] = append(filmShards[s], f)
	}

	var (
		mu     sync.Mutex
		merged []*domain.Actor
		errs   []reconcile.EntityError
	)
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < workers; i++ {
		i := i
		g.Go(func() error {
			rows, es := reconcile.MergeYear(prevShards[i], filmShards[i], year, e.opts())
			mu.Lock()
			merged = append(merged, rows...)
			errs = append(errs, es...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(merged, func(i, j int) bool { return merged[i].ActorID < merged[j].ActorID })
	sort.Slice(errs, func(i, j int) bool { return errs[i].ActorID < errs[j].ActorID })
	return merged, errs
}

func shardFor(actorID string, workers int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32() % uint32(workers))
}

func (e *Engine) finishRun(ctx context.Context, log *logger.Logger, kind string, year int, started time.Time, processed, historyRows int, entErrs []reconcile.EntityError) *RunSummary {
	status := domain.RunStatusSucceeded
	switch {
	case len(entErrs) > 0 && processed == 0:
		status = domain.RunStatusFailed
	case len(entErrs) > 0:
		status = domain.RunStatusPartial
	}

	run := &domain.ReconcileRun{
		ID:         uuid.New(),
		Kind:       kind,
		Year:       year,
		Status:     status,
		Processed:  processed,
		Failed:     len(entErrs),
		Errors:     marshalEntityErrors(entErrs),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := e.repos.ReconcileRuns.Create(ctx, nil, run); err != nil {
		log.Error("failed to record run", "error", err)
	}

	if len(entErrs) > 0 {
		log.Warn("run finished with per-actor failures",
			"status", status, "processed", processed, "failed", len(entErrs))
	} else {
		log.Info("run finished", "status", status, "processed", processed, "history_rows", historyRows)
	}

	return &RunSummary{
		RunID:       run.ID,
		Kind:        kind,
		Year:        year,
		Processed:   processed,
		HistoryRows: historyRows,
		Status:      status,
		Failed:      entErrs,
	}
}

func marshalEntityErrors(entErrs []reconcile.EntityError) []byte {
	if len(entErrs) == 0 {
		return nil
	}
	type item struct {
		ActorID string `json:"actor_id"`
		Error   string `json:"error"`
	}
	items := make([]item, 0, len(entErrs))
	for _, e := range entErrs {
		items = append(items, item{ActorID: e.ActorID, Error: e.Err.Error()})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil
	}
	return raw
}
