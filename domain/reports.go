package domain

// Read-model rows served to external reporting.

// ClassCount is one slice of the quality distribution for a year.
type ClassCount struct {
	QualityClass QualityClass `json:"quality_class"`
	Count        int64        `json:"count"`
}

// PointsLeader is one row of the points-per-game leaderboard.
type PointsLeader struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	Games         int     `json:"games"`
	TotalPoints   int     `json:"total_points"`
	PointsPerGame float64 `json:"points_per_game"`
}
