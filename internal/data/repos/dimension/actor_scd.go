package dimension

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type ActorSCDRepo interface {
	// Upsert writes history rows, extending in place on (actor_id,
	// start_year) conflicts. Incremental advances only ever grow end_year or
	// bump as_of_year, so replacing the non-key columns is safe.
	Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.ActorSCD) error
	// ReplaceAll swaps the whole history table for a freshly backfilled set.
	ReplaceAll(ctx context.Context, tx *gorm.DB, rows []*domain.ActorSCD) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.ActorSCD, error)
	GetByActor(ctx context.Context, tx *gorm.DB, actorID string) ([]*domain.ActorSCD, error)
	DeleteByActors(ctx context.Context, tx *gorm.DB, actorIDs []string) error
}

type actorSCDRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActorSCDRepo(db *gorm.DB, baseLog *logger.Logger) ActorSCDRepo {
	return &actorSCDRepo{db: db, log: baseLog.With("repo", "ActorSCDRepo")}
}

func (r *actorSCDRepo) Upsert(ctx context.Context, tx *gorm.DB, rows []*domain.ActorSCD) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "actor_id"}, {Name: "start_year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"end_year", "quality_class", "is_active", "as_of_year",
			}),
		}).
		CreateInBatches(&rows, 500).Error
}

func (r *actorSCDRepo) ReplaceAll(ctx context.Context, tx *gorm.DB, rows []*domain.ActorSCD) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("1 = 1").
		Delete(&domain.ActorSCD{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (r *actorSCDRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.ActorSCD, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ActorSCD
	if err := t.WithContext(ctx).
		Order("actor_id, start_year").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorSCDRepo) GetByActor(ctx context.Context, tx *gorm.DB, actorID string) ([]*domain.ActorSCD, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ActorSCD
	if actorID == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("start_year").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorSCDRepo) DeleteByActors(ctx context.Context, tx *gorm.DB, actorIDs []string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(actorIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("actor_id IN ?", actorIDs).
		Delete(&domain.ActorSCD{}).Error
}
