package graphbuild

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/data/repos"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

type Deps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Games    repos.GameRepo
	Details  repos.GameDetailRepo
	Teams    repos.TeamRepo
	Vertices repos.VertexRepo
	Edges    repos.EdgeRepo
}

type Output struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
}

// Build projects the raw games/game_details/teams tables into the vertex and
// edge tables. It is a full rebuild: each vertex and edge type is replaced
// wholesale inside one transaction, so re-running it is idempotent.
func Build(ctx context.Context, deps Deps) (Output, error) {
	out := Output{}
	if deps.DB == nil || deps.Log == nil || deps.Games == nil || deps.Details == nil ||
		deps.Teams == nil || deps.Vertices == nil || deps.Edges == nil {
		return out, fmt.Errorf("graphbuild: missing deps")
	}
	log := deps.Log.With("step", "graph_build")

	games, err := deps.Games.GetAll(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("load games: %w", err)
	}
	details, err := deps.Details.GetPlayed(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("load game details: %w", err)
	}
	teams, err := deps.Teams.GetAll(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("load teams: %w", err)
	}

	gameVerts := buildGameVertices(games)
	teamVerts := buildTeamVertices(teams)
	playerVerts := buildPlayerVertices(details)
	playsIn := buildPlaysInEdges(details)
	against, shared := buildPlayerPairEdges(details)

	err = deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deps.Vertices.ReplaceByType(ctx, tx, domain.VertexGame, gameVerts); err != nil {
			return fmt.Errorf("replace game vertices: %w", err)
		}
		if err := deps.Vertices.ReplaceByType(ctx, tx, domain.VertexTeam, teamVerts); err != nil {
			return fmt.Errorf("replace team vertices: %w", err)
		}
		if err := deps.Vertices.ReplaceByType(ctx, tx, domain.VertexPlayer, playerVerts); err != nil {
			return fmt.Errorf("replace player vertices: %w", err)
		}
		if err := deps.Edges.ReplaceByType(ctx, tx, domain.EdgePlaysIn, playsIn); err != nil {
			return fmt.Errorf("replace plays_in edges: %w", err)
		}
		if err := deps.Edges.ReplaceByType(ctx, tx, domain.EdgePlaysAgainst, against); err != nil {
			return fmt.Errorf("replace plays_against edges: %w", err)
		}
		if err := deps.Edges.ReplaceByType(ctx, tx, domain.EdgeSharesTeam, shared); err != nil {
			return fmt.Errorf("replace shares_team edges: %w", err)
		}
		return nil
	})
	if err != nil {
		return out, err
	}

	out.Vertices = len(gameVerts) + len(teamVerts) + len(playerVerts)
	out.Edges = len(playsIn) + len(against) + len(shared)
	log.Info("graph rebuilt", "vertices", out.Vertices, "edges", out.Edges)
	return out, nil
}

func buildGameVertices(games []*domain.Game) []*domain.Vertex {
	out := make([]*domain.Vertex, 0, len(games))
	for _, g := range games {
		winner := g.VisitorTeamID
		if g.HomeTeamWins {
			winner = g.HomeTeamID
		}
		out = append(out, &domain.Vertex{
			Identifier: g.GameID,
			Type:       domain.VertexGame,
			Properties: map[string]interface{}{
				"season":       g.Season,
				"pts_home":     g.PtsHome,
				"pts_away":     g.PtsAway,
				"winning_team": winner,
			},
		})
	}
	return out
}

func buildTeamVertices(teams []*domain.Team) []*domain.Vertex {
	out := make([]*domain.Vertex, 0, len(teams))
	for _, t := range teams {
		out = append(out, &domain.Vertex{
			Identifier: t.TeamID,
			Type:       domain.VertexTeam,
			Properties: map[string]interface{}{
				"abbreviation": t.Abbreviation,
				"nickname":     t.Nickname,
				"city":         t.City,
				"arena":        t.Arena,
				"year_founded": t.YearFounded,
			},
		})
	}
	return out
}

func buildPlayerVertices(details []*domain.GameDetail) []*domain.Vertex {
	type agg struct {
		name   string
		games  int
		points int
		teams  map[string]bool
	}
	byPlayer := make(map[string]*agg)
	for _, d := range details {
		a := byPlayer[d.PlayerID]
		if a == nil {
			a = &agg{teams: make(map[string]bool)}
			byPlayer[d.PlayerID] = a
		}
		a.name = d.PlayerName
		a.games++
		if d.Pts != nil {
			a.points += *d.Pts
		}
		a.teams[d.TeamID] = true
	}

	ids := make([]string, 0, len(byPlayer))
	for id := range byPlayer {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*domain.Vertex, 0, len(ids))
	for _, id := range ids {
		a := byPlayer[id]
		teams := make([]string, 0, len(a.teams))
		for t := range a.teams {
			teams = append(teams, t)
		}
		sort.Strings(teams)
		out = append(out, &domain.Vertex{
			Identifier: id,
			Type:       domain.VertexPlayer,
			Properties: map[string]interface{}{
				"player_name":     a.name,
				"number_of_games": a.games,
				"total_points":    a.points,
				"teams":           teams,
			},
		})
	}
	return out
}

func buildPlaysInEdges(details []*domain.GameDetail) []*domain.Edge {
	out := make([]*domain.Edge, 0, len(details))
	for _, d := range details {
		pts := 0
		if d.Pts != nil {
			pts = *d.Pts
		}
		out = append(out, &domain.Edge{
			SubjectIdentifier: d.PlayerID,
			SubjectType:       domain.VertexPlayer,
			ObjectIdentifier:  d.GameID,
			ObjectType:        domain.VertexGame,
			EdgeType:          domain.EdgePlaysIn,
			Properties: map[string]interface{}{
				"start_position": d.StartPosition,
				"pts":            pts,
				"team_id":        d.TeamID,
			},
		})
	}
	return out
}

// buildPlayerPairEdges aggregates one edge per unordered player pair: teammates
// become shares_team, opponents plays_against. The lower player id is always
// the subject so each pair is stored once.
func buildPlayerPairEdges(details []*domain.GameDetail) (against, shared []*domain.Edge) {
	type pairKey struct {
		subject  string
		object   string
		sameTeam bool
	}
	type pairAgg struct {
		games         int
		subjectPoints int
		objectPoints  int
	}

	byGame := make(map[string][]*domain.GameDetail)
	for _, d := range details {
		byGame[d.GameID] = append(byGame[d.GameID], d)
	}

	pairs := make(map[pairKey]*pairAgg)
	for _, roster := range byGame {
		for i := 0; i < len(roster); i++ {
			for j := i + 1; j < len(roster); j++ {
				a, b := roster[i], roster[j]
				if a.PlayerID == b.PlayerID {
					continue
				}
				if a.PlayerID > b.PlayerID {
					a, b = b, a
				}
				key := pairKey{subject: a.PlayerID, object: b.PlayerID, sameTeam: a.TeamID == b.TeamID}
				p := pairs[key]
				if p == nil {
					p = &pairAgg{}
					pairs[key] = p
				}
				p.games++
				if a.Pts != nil {
					p.subjectPoints += *a.Pts
				}
				if b.Pts != nil {
					p.objectPoints += *b.Pts
				}
			}
		}
	}

	keys := make([]pairKey, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].subject != keys[j].subject {
			return keys[i].subject < keys[j].subject
		}
		return keys[i].object < keys[j].object
	})

	for _, k := range keys {
		p := pairs[k]
		etype := domain.EdgePlaysAgainst
		if k.sameTeam {
			etype = domain.EdgeSharesTeam
		}
		e := &domain.Edge{
			SubjectIdentifier: k.subject,
			SubjectType:       domain.VertexPlayer,
			ObjectIdentifier:  k.object,
			ObjectType:        domain.VertexPlayer,
			EdgeType:          etype,
			Properties: map[string]interface{}{
				"num_games":      p.games,
				"subject_points": p.subjectPoints,
				"object_points":  p.objectPoints,
			},
		}
		if k.sameTeam {
			shared = append(shared, e)
		} else {
			against = append(against, e)
		}
	}
	return against, shared
}
