package repos

import (
	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/internal/data/repos/dimension"
	"github.com/omnarayansharma777/chronodim/internal/data/repos/graph"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type ActorFilmRepo = dimension.ActorFilmRepo
type ActorRepo = dimension.ActorRepo
type ActorSCDRepo = dimension.ActorSCDRepo
type ReconcileRunRepo = dimension.ReconcileRunRepo

type GameRepo = graph.GameRepo
type GameDetailRepo = graph.GameDetailRepo
type TeamRepo = graph.TeamRepo
type VertexRepo = graph.VertexRepo
type EdgeRepo = graph.EdgeRepo

// Set bundles every repository over one gorm handle.
type Set struct {
	ActorFilms    ActorFilmRepo
	Actors        ActorRepo
	ActorSCD      ActorSCDRepo
	ReconcileRuns ReconcileRunRepo

	Games       GameRepo
	GameDetails GameDetailRepo
	Teams       TeamRepo
	Vertices    VertexRepo
	Edges       EdgeRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) *Set {
	return &Set{
		ActorFilms:    dimension.NewActorFilmRepo(db, baseLog),
		Actors:        dimension.NewActorRepo(db, baseLog),
		ActorSCD:      dimension.NewActorSCDRepo(db, baseLog),
		ReconcileRuns: dimension.NewReconcileRunRepo(db, baseLog),

		Games:       graph.NewGameRepo(db, baseLog),
		GameDetails: graph.NewGameDetailRepo(db, baseLog),
		Teams:       graph.NewTeamRepo(db, baseLog),
		Vertices:    graph.NewVertexRepo(db, baseLog),
		Edges:       graph.NewEdgeRepo(db, baseLog),
	}
}
