package dimension

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type ActorRepo interface {
	// Upsert writes cumulative rows, replacing any existing (actor_id, year)
	// row so re-running a year is idempotent.
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.Actor) error
	GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.Actor, error)
	GetThroughYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.Actor, error)
	// StaleActorIDs lists actors whose newest cumulative row is older than
	// year-1: their chains cannot be extended to year.
	StaleActorIDs(ctx context.Context, tx *gorm.DB, year int) ([]string, error)
	MaxYear(ctx context.Context, tx *gorm.DB) (*int, error)
}

type actorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActorRepo(db *gorm.DB, baseLog *logger.Logger) ActorRepo {
	return &actorRepo{db: db, log: baseLog.With("repo", "ActorRepo")}
}

func (r *actorRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.Actor) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "actor_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"actor_name", "films", "quality_class", "is_active",
			}),
		}).
		CreateInBatches(&rows, 500).Error
}

func (r *actorRepo) GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.Actor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Actor
	if err := t.WithContext(ctx).
		Where("year = ?", year).
		Order("actor_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorRepo) GetThroughYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.Actor, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Actor
	if err := t.WithContext(ctx).
		Where("year <= ?", year).
		Order("actor_id, year").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorRepo) StaleActorIDs(ctx context.Context, tx *gorm.DB, year int) ([]string, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []string
	if err := t.WithContext(ctx).
		Model(&domain.Actor{}).
		Select("actor_id").
		Group("actor_id").
		Having("MAX(year) < ?", year-1).
		Order("actor_id").
		Pluck("actor_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorRepo) MaxYear(ctx context.Context, tx *gorm.DB) (*int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out *int
	if err := t.WithContext(ctx).
		Model(&domain.Actor{}).
		Select("MAX(year)").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
