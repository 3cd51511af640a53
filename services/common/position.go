package common

import (
	"strconv"
	"strings"
)

// PlayerStatus is the lifecycle state read off a leaderboard position string.
type PlayerStatus string

const (
	StatusActive    PlayerStatus = "active"
	StatusFinished  PlayerStatus = "finished"
	StatusCut       PlayerStatus = "cut"
	StatusWithdrawn PlayerStatus = "withdrawn"
)

// Position is the parsed form of a leaderboard position string.
type Position struct {
	Rank   int // 0 when the player has no rank (cut, withdrawn)
	Tied   bool
	Status PlayerStatus
}

// ParsePosition is the single parser for leaderboard position strings.
// "1" and "T1" both rank 1; "CUT"/"MC" mark a missed cut; "WD"/"DQ" mark a
// withdrawal. Cut and withdrawn positions count as a finished round.
func ParsePosition(s string) Position {
	p := strings.ToUpper(strings.TrimSpace(s))

	switch p {
	case "CUT", "MC":
		return Position{Status: StatusCut}
	case "WD", "DQ", "W/D":
		return Position{Status: StatusWithdrawn}
	case "F", "FIN":
		return Position{Status: StatusFinished}
	case "", "-", "--":
		return Position{Status: StatusActive}
	}

	tied := strings.HasPrefix(p, "T")
	if tied {
		p = p[1:]
	}

	rank, err := strconv.Atoi(p)
	if err != nil || rank <= 0 {
		return Position{Status: StatusActive}
	}
	return Position{Rank: rank, Tied: tied, Status: StatusActive}
}

// IsFinal reports whether the position alone implies the round is over for
// this player (finished, cut or withdrawn).
func (p Position) IsFinal() bool {
	return p.Status == StatusFinished || p.Status == StatusCut || p.Status == StatusWithdrawn
}
