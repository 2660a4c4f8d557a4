package dimension

import (
	"context"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type ActorFilmRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.ActorFilm) ([]*domain.ActorFilm, error)
	GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.ActorFilm, error)
	Years(ctx context.Context, tx *gorm.DB) ([]int, error)
}

type actorFilmRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActorFilmRepo(db *gorm.DB, baseLog *logger.Logger) ActorFilmRepo {
	return &actorFilmRepo{db: db, log: baseLog.With("repo", "ActorFilmRepo")}
}

func (r *actorFilmRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.ActorFilm) ([]*domain.ActorFilm, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.ActorFilm{}, nil
	}
	if err := t.WithContext(ctx).CreateInBatches(&rows, 500).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *actorFilmRepo) GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.ActorFilm, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ActorFilm
	if err := t.WithContext(ctx).
		Where("year = ?", year).
		Order("actor_id, film_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *actorFilmRepo) Years(ctx context.Context, tx *gorm.DB) ([]int, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []int
	if err := t.WithContext(ctx).
		Model(&domain.ActorFilm{}).
		Distinct("year").
		Order("year").
		Pluck("year", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
