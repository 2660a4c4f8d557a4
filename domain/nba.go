package domain

// Raw sports tables read by the graph builder. Like actor_films, these are
// owned by the external store; the builder only projects out of them.

type Game struct {
	GameID        string `gorm:"column:game_id;primaryKey" json:"game_id"`
	Season        int    `gorm:"column:season;not null;index:idx_game_season" json:"season"`
	HomeTeamID    string `gorm:"column:home_team_id;not null" json:"home_team_id"`
	VisitorTeamID string `gorm:"column:visitor_team_id;not null" json:"visitor_team_id"`
	PtsHome       int    `gorm:"column:pts_home;not null" json:"pts_home"`
	PtsAway       int    `gorm:"column:pts_away;not null" json:"pts_away"`
	HomeTeamWins  bool   `gorm:"column:home_team_wins;not null" json:"home_team_wins"`
}

func (Game) TableName() string { return "games" }

type GameDetail struct {
	GameID        string `gorm:"column:game_id;primaryKey" json:"game_id"`
	PlayerID      string `gorm:"column:player_id;primaryKey" json:"player_id"`
	TeamID        string `gorm:"column:team_id;not null" json:"team_id"`
	PlayerName    string `gorm:"column:player_name;not null" json:"player_name"`
	StartPosition string `gorm:"column:start_position" json:"start_position"`
	// Pts is nil when the player was on the roster but did not play.
	Pts *int `gorm:"column:pts" json:"pts,omitempty"`
}

func (GameDetail) TableName() string { return "game_details" }

type Team struct {
	TeamID       string `gorm:"column:team_id;primaryKey" json:"team_id"`
	Abbreviation string `gorm:"column:abbreviation;not null" json:"abbreviation"`
	Nickname     string `gorm:"column:nickname;not null" json:"nickname"`
	City         string `gorm:"column:city" json:"city"`
	Arena        string `gorm:"column:arena" json:"arena"`
	YearFounded  int    `gorm:"column:year_founded" json:"year_founded"`
}

func (Team) TableName() string { return "teams" }
