package external

type RapidGolf_Leaderboard struct {
	OrgID   string                     `json:"orgId"`
	TournID string                     `json:"tournId"`
	Year    string                     `json:"year"`
	Status  string                     `json:"status"`
	RoundID int                        `json:"roundId"`
	Rows    []RapidGolf_LeaderboardRow `json:"leaderboardRows"`
}

type RapidGolf_LeaderboardRow struct {
	PlayerID          string            `json:"playerId"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Position          string            `json:"position"` // "1", "T5", "CUT", "WD", ...
	Total             string            `json:"total"`    // score to par, "E", "-12", "+3"
	CurrentRoundScore string            `json:"currentRoundScore"`
	Thru              string            `json:"thru"` // holes completed, "F" when finished
	Status            string            `json:"status"`
	Rounds            []RapidGolf_Round `json:"rounds"`
}

type RapidGolf_Round struct {
	RoundID    int    `json:"roundId"`
	Strokes    int    `json:"strokes"`
	ScoreToPar string `json:"scoreToPar"`
}
