package models

import "gorm.io/gorm"

const (
	MatchupTwoWay   = "two_way"
	MatchupThreeWay = "three_way"
)

type Matchup struct {
	gorm.Model
	ID           uint `gorm:"primaryKey"`
	TournamentID uint `gorm:"index"`
	Round        int
	Type         string `gorm:"size:16"` // "two_way" or "three_way"
	Player1ID    int
	Player1Name  string `gorm:"size:128"`
	Player2ID    int
	Player2Name  string `gorm:"size:128"`
	Player3ID    *int
	Player3Name  *string `gorm:"size:128"`
}

// MatchupSlot is one side of a matchup. Slot numbers are 1-based.
type MatchupSlot struct {
	Slot       int
	PlayerID   int
	PlayerName string
}

// Slots returns the occupied slots in order. A two_way matchup has two,
// a three_way has three.
func (m *Matchup) Slots() []MatchupSlot {
	slots := []MatchupSlot{
		{Slot: 1, PlayerID: m.Player1ID, PlayerName: m.Player1Name},
		{Slot: 2, PlayerID: m.Player2ID, PlayerName: m.Player2Name},
	}
	if m.Type == MatchupThreeWay && m.Player3ID != nil {
		name := ""
		if m.Player3Name != nil {
			name = *m.Player3Name
		}
		slots = append(slots, MatchupSlot{Slot: 3, PlayerID: *m.Player3ID, PlayerName: name})
	}
	return slots
}
