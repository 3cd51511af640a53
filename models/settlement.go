package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MethodAutomatic = "automatic"
	MethodManual    = "manual"
	MethodOverride  = "override"
)

// SettlementRecord is the append-only audit log of grading decisions. A
// re-settlement adds a new record carrying the superseded outcome; existing
// rows are never updated or deleted.
type SettlementRecord struct {
	gorm.Model
	ID              uint   `gorm:"primaryKey"`
	PickID          uint   `gorm:"index"`
	RunID           string `gorm:"size:36;index"`
	PreviousOutcome string `gorm:"size:8"`
	NewOutcome      string `gorm:"size:8"`
	Reason          string `gorm:"size:512"`
	StatSnapshot    string `gorm:"type:text"` // raw normalized stats for all slots, JSON
	Method          string `gorm:"size:16"`   // "automatic", "manual", "override"
	SettledAt       time.Time
}
