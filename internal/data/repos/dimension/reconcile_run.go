package dimension

import (
	"context"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type ReconcileRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *domain.ReconcileRun) error
	GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.ReconcileRun, error)
}

type reconcileRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReconcileRunRepo(db *gorm.DB, baseLog *logger.Logger) ReconcileRunRepo {
	return &reconcileRunRepo{db: db, log: baseLog.With("repo", "ReconcileRunRepo")}
}

func (r *reconcileRunRepo) Create(ctx context.Context, tx *gorm.DB, row *domain.ReconcileRun) error {
	t := tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(ctx).Create(row).Error
}

func (r *reconcileRunRepo) GetByYear(ctx context.Context, tx *gorm.DB, year int) ([]*domain.ReconcileRun, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.ReconcileRun
	if err := t.WithContext(ctx).
		Where("year = ?", year).
		Order("started_at").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
