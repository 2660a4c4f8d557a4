package graph

import (
	"context"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

// Repos over the raw sports tables the graph builder projects from.

type GameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Game) ([]*domain.Game, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Game, error)
}

type GameDetailRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.GameDetail) ([]*domain.GameDetail, error)
	// GetPlayed returns only rows where the player actually logged points.
	GetPlayed(ctx context.Context, tx *gorm.DB) ([]*domain.GameDetail, error)
}

type TeamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*domain.Team) ([]*domain.Team, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Team, error)
}

type gameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameRepo(db *gorm.DB, baseLog *logger.Logger) GameRepo {
	return &gameRepo{db: db, log: baseLog.With("repo", "GameRepo")}
}

func (r *gameRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Game) ([]*domain.Game, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Game{}, nil
	}
	if err := t.WithContext(ctx).CreateInBatches(&rows, 500).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Game, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Game
	if err := t.WithContext(ctx).Order("game_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type gameDetailRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGameDetailRepo(db *gorm.DB, baseLog *logger.Logger) GameDetailRepo {
	return &gameDetailRepo{db: db, log: baseLog.With("repo", "GameDetailRepo")}
}

func (r *gameDetailRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.GameDetail) ([]*domain.GameDetail, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.GameDetail{}, nil
	}
	if err := t.WithContext(ctx).CreateInBatches(&rows, 500).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gameDetailRepo) GetPlayed(ctx context.Context, tx *gorm.DB) ([]*domain.GameDetail, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.GameDetail
	if err := t.WithContext(ctx).
		Where("pts IS NOT NULL").
		Order("game_id, player_id").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type teamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTeamRepo(db *gorm.DB, baseLog *logger.Logger) TeamRepo {
	return &teamRepo{db: db, log: baseLog.With("repo", "TeamRepo")}
}

func (r *teamRepo) Create(ctx context.Context, tx *gorm.DB, rows []*domain.Team) ([]*domain.Team, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*domain.Team{}, nil
	}
	if err := t.WithContext(ctx).CreateInBatches(&rows, 500).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *teamRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*domain.Team, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Team
	if err := t.WithContext(ctx).Order("team_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
