package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SettlementPending = "pending"
	SettlementSettled = "settled"

	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomePush = "push"
	OutcomeVoid = "void"
)

type Pick struct {
	gorm.Model
	ID               uint `gorm:"primaryKey"`
	ParlayID         uint `gorm:"index"`
	MatchupID        uint `gorm:"index"`
	Matchup          Matchup `gorm:"foreignKey:MatchupID"`
	Round            int
	SelectedSlot     int    // 1, 2 or 3
	Odds             int    // American odds at the time the pick was placed
	SettlementStatus string `gorm:"size:16;default:pending;index"`
	Outcome          string `gorm:"size:8"` // "", "win", "loss", "push", "void"
	SettlementReason string `gorm:"size:512"`
	SettledAt        *time.Time
}
