package domain

import (
	"gorm.io/datatypes"
)

type VertexType string

const (
	VertexPlayer VertexType = "player"
	VertexTeam   VertexType = "team"
	VertexGame   VertexType = "game"
)

type EdgeType string

const (
	EdgePlaysIn      EdgeType = "plays_in"
	EdgePlaysAgainst EdgeType = "plays_against"
	EdgeSharesTeam   EdgeType = "shares_team"
)

// Vertex is a node in the relational graph model. Properties is a free-form
// json bag whose keys depend on Type.
type Vertex struct {
	Identifier string            `gorm:"column:identifier;primaryKey" json:"identifier"`
	Type       VertexType        `gorm:"column:type;primaryKey" json:"type"`
	Properties datatypes.JSONMap `gorm:"column:properties" json:"properties"`
}

func (Vertex) TableName() string { return "vertices" }

// Edge connects two vertices. Player-to-player edges are stored once, with
// subject_identifier ordered before object_identifier.
type Edge struct {
	SubjectIdentifier string            `gorm:"column:subject_identifier;primaryKey" json:"subject_identifier"`
	SubjectType       VertexType        `gorm:"column:subject_type;primaryKey" json:"subject_type"`
	ObjectIdentifier  string            `gorm:"column:object_identifier;primaryKey" json:"object_identifier"`
	ObjectType        VertexType        `gorm:"column:object_type;primaryKey" json:"object_type"`
	EdgeType          EdgeType          `gorm:"column:edge_type;primaryKey" json:"edge_type"`
	Properties        datatypes.JSONMap `gorm:"column:properties" json:"properties"`
}

func (Edge) TableName() string { return "edges" }
