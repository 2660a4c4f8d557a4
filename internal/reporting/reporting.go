package reporting

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/data/repos"
)

// QualityDistribution counts cumulative rows per class at one year.
func QualityDistribution(ctx context.Context, db *gorm.DB, year int) ([]domain.ClassCount, error) {
	var out []domain.ClassCount
	if err := db.WithContext(ctx).
		Model(&domain.Actor{}).
		Select("quality_class, COUNT(*) AS count").
		Where("year = ?", year).
		Group("quality_class").
		Order("quality_class").
		Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("quality distribution: %w", err)
	}
	return out, nil
}

// ActiveCount counts actors flagged active at one year.
func ActiveCount(ctx context.Context, db *gorm.DB, year int) (int64, error) {
	var n int64
	if err := db.WithContext(ctx).
		Model(&domain.Actor{}).
		Where("year = ? AND is_active = ?", year, true).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("active count: %w", err)
	}
	return n, nil
}

// ActorTimeline returns an actor's history rows in start order.
func ActorTimeline(ctx context.Context, scd repos.ActorSCDRepo, actorID string) ([]*domain.ActorSCD, error) {
	rows, err := scd.GetByActor(ctx, nil, actorID)
	if err != nil {
		return nil, fmt.Errorf("actor timeline: %w", err)
	}
	return rows, nil
}

// PointsLeaders ranks player vertices by points per game. The per-player
// aggregates live in the json properties bag, so ranking happens here rather
// than in the store.
func PointsLeaders(ctx context.Context, vertices repos.VertexRepo, limit int) ([]domain.PointsLeader, error) {
	rows, err := vertices.GetByType(ctx, nil, domain.VertexPlayer)
	if err != nil {
		return nil, fmt.Errorf("points leaders: %w", err)
	}

	out := make([]domain.PointsLeader, 0, len(rows))
	for _, v := range rows {
		games := asInt(v.Properties["number_of_games"])
		if games == 0 {
			continue
		}
		points := asInt(v.Properties["total_points"])
		out = append(out, domain.PointsLeader{
			PlayerID:      v.Identifier,
			PlayerName:    asString(v.Properties["player_name"]),
			Games:         games,
			TotalPoints:   points,
			PointsPerGame: float64(points) / float64(games),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PointsPerGame != out[j].PointsPerGame {
			return out[i].PointsPerGame > out[j].PointsPerGame
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// json numbers decode as float64; vertices built in-process still hold ints.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
