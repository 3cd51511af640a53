package models

import "gorm.io/gorm"

type Parlay struct {
	gorm.Model
	ID              uint `gorm:"primaryKey"`
	UserID          uint `gorm:"index"`
	TournamentID    uint `gorm:"index"`
	Stake           int
	TotalOdds       float64 // combined decimal multiplier across all legs
	PotentialPayout float64
	Outcome         string   `gorm:"size:8"` // "", "win", "loss", "push", "void"
	ActualPayout    *float64 // nil until the parlay is settled
	Picks           []Pick
}
