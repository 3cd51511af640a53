package models

// PlayerRoundStat is one player's normalized statistics for one round.
// It is sourced fresh from the tour feed on every settlement run and is
// never persisted as the system of record; the Redis stat cache holds a
// read-optimized copy for the UI only.
type PlayerRoundStat struct {
	PlayerID      int    `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TournamentID  uint   `json:"tournamentId"`
	Round         int    `json:"round"`
	Position      string `json:"position"` // raw leaderboard position, e.g. "T5", "CUT", "WD"
	TotalScore    int    `json:"totalScore"`
	TodayScore    *int   `json:"todayScore"` // nil when the feed had no round score
	Thru          int    `json:"thru"`
	Withdrawn     bool   `json:"withdrawn"`
	RoundComplete bool   `json:"roundComplete"`
}

// RoundScore is the score used to decide a matchup: today's score when
// present, otherwise the cumulative total, otherwise 0.
func (s *PlayerRoundStat) RoundScore() int {
	if s.TodayScore != nil {
		return *s.TodayScore
	}
	return s.TotalScore
}
