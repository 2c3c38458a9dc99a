package models

import (
	"time"
)

// Inventory tracks raw and material units for one team in one industry.
// Raw units feed production, material units are the sellable output.
// Both fields stay non-negative; services reject any operation that
// would drive them below zero before mutating.
type Inventory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TeamID        uint      `gorm:"not null;uniqueIndex:idx_team_industry" json:"team_id"`
	Industry      string    `gorm:"size:50;not null;uniqueIndex:idx_team_industry" json:"industry"`
	RawUnits      int       `gorm:"not null;default:0" json:"raw_units"`
	MaterialUnits int       `gorm:"not null;default:0" json:"material_units"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Inventory model
func (Inventory) TableName() string {
	return "inventory"
}
