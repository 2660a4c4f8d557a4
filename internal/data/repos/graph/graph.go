package graph

import (
	"context"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type VertexRepo interface {
	// ReplaceByType swaps every vertex of one type for a freshly built set;
	// the graph build is a full rebuild, never a patch.
	ReplaceByType(ctx context.Context, tx *gorm.DB, vtype domain.VertexType, rows []*domain.Vertex) error
	GetByType(ctx context.Context, tx *gorm.DB, vtype domain.VertexType) ([]*domain.Vertex, error)
}

type EdgeRepo interface {
	ReplaceByType(ctx context.Context, tx *gorm.DB, etype domain.EdgeType, rows []*domain.Edge) error
	GetByType(ctx context.Context, tx *gorm.DB, etype domain.EdgeType) ([]*domain.Edge, error)
}

type vertexRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVertexRepo(db *gorm.DB, baseLog *logger.Logger) VertexRepo {
	return &vertexRepo{db: db, log: baseLog.With("repo", "VertexRepo")}
}

func (r *vertexRepo) ReplaceByType(ctx context.Context, tx *gorm.DB, vtype domain.VertexType, rows []*domain.Vertex) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("type = ?", vtype).
		Delete(&domain.Vertex{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (r *vertexRepo) GetByType(ctx context.Context, tx *gorm.DB, vtype domain.VertexType) ([]*domain.Vertex, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Vertex
	if err := t.WithContext(ctx).
		Where("type = ?", vtype).
		Order("identifier").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type edgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEdgeRepo(db *gorm.DB, baseLog *logger.Logger) EdgeRepo {
	return &edgeRepo{db: db, log: baseLog.With("repo", "EdgeRepo")}
}

func (r *edgeRepo) ReplaceByType(ctx context.Context, tx *gorm.DB, etype domain.EdgeType, rows []*domain.Edge) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).
		Where("edge_type = ?", etype).
		Delete(&domain.Edge{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return t.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

func (r *edgeRepo) GetByType(ctx context.Context, tx *gorm.DB, etype domain.EdgeType) ([]*domain.Edge, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*domain.Edge
	if err := t.WithContext(ctx).
		Where("edge_type = ?", etype).
		Order("subject_identifier, object_identifier").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
