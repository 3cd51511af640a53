package models

import "gorm.io/gorm"

type Tournament struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255"`
	Tour         string `gorm:"size:64"` // declared tour, e.g. "PGA Tour", "Korn Ferry Tour"
	ExternalID   string `gorm:"size:64"` // feed tournament id
	Season       int
	CurrentRound int
}
